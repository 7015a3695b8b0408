package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quitmate/quitmate-backend/internal/logger"
	"github.com/quitmate/quitmate-backend/internal/types"
)

type ChatMessageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.ChatMessage) (*types.ChatMessage, error)
	ListConversation(ctx context.Context, tx *gorm.DB, userA, userB uuid.UUID) ([]*types.ChatMessage, error)
	MarkRead(ctx context.Context, tx *gorm.DB, recipientID, senderID uuid.UUID, readAt time.Time) error
}

type chatMessageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatMessageRepo(db *gorm.DB, baseLog *logger.Logger) ChatMessageRepo {
	repoLog := baseLog.With("repo", "ChatMessageRepo")
	return &chatMessageRepo{db: db, log: repoLog}
}

func (r *chatMessageRepo) Create(ctx context.Context, tx *gorm.DB, row *types.ChatMessage) (*types.ChatMessage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *chatMessageRepo) ListConversation(ctx context.Context, tx *gorm.DB, userA, userB uuid.UUID) ([]*types.ChatMessage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ChatMessage
	if userA == uuid.Nil || userB == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)", userA, userB, userB, userA).
		Order("sent_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// MarkRead stamps every unread message sent by senderID to recipientID.
func (r *chatMessageRepo) MarkRead(ctx context.Context, tx *gorm.DB, recipientID, senderID uuid.UUID, readAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if recipientID == uuid.Nil || senderID == uuid.Nil {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.ChatMessage{}).
		Where("recipient_id = ? AND sender_id = ? AND read_at IS NULL", recipientID, senderID).
		Update("read_at", readAt).Error
}
