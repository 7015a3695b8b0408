package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quitmate/quitmate-backend/internal/logger"
	"github.com/quitmate/quitmate-backend/internal/repos"
	"github.com/quitmate/quitmate-backend/internal/types"
)

type ChatService interface {
	SendMessage(ctx context.Context, senderID, recipientID uuid.UUID, body string) (*types.ChatMessage, error)
	ListConversation(ctx context.Context, userA, userB uuid.UUID) ([]*types.ChatMessage, error)
	// MarkConversationRead stamps every unread message senderID sent to readerID.
	MarkConversationRead(ctx context.Context, readerID, senderID uuid.UUID) error
}

type chatService struct {
	db          *gorm.DB
	log         *logger.Logger
	messageRepo repos.ChatMessageRepo
	userRepo    repos.UserRepo
}

func NewChatService(db *gorm.DB, log *logger.Logger, messageRepo repos.ChatMessageRepo, userRepo repos.UserRepo) ChatService {
	serviceLog := log.With("service", "ChatService")
	return &chatService{db: db, log: serviceLog, messageRepo: messageRepo, userRepo: userRepo}
}

func (s *chatService) SendMessage(ctx context.Context, senderID, recipientID uuid.UUID, body string) (*types.ChatMessage, error) {
	if senderID == uuid.Nil || recipientID == uuid.Nil {
		return nil, fmt.Errorf("sender id and recipient id required")
	}
	if senderID == recipientID {
		return nil, fmt.Errorf("cannot message yourself")
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("message body required")
	}

	users, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{senderID, recipientID})
	if err != nil {
		return nil, fmt.Errorf("loading participants: %w: %w", ErrStoreUnavailable, err)
	}
	if len(users) != 2 {
		return nil, fmt.Errorf("sender or recipient not found")
	}

	row := &types.ChatMessage{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		SentAt:      time.Now().UTC(),
	}
	created, err := s.messageRepo.Create(ctx, nil, row)
	if err != nil {
		return nil, fmt.Errorf("creating message: %w: %w", ErrStoreUnavailable, err)
	}
	return created, nil
}

func (s *chatService) ListConversation(ctx context.Context, userA, userB uuid.UUID) ([]*types.ChatMessage, error) {
	if userA == uuid.Nil || userB == uuid.Nil {
		return nil, fmt.Errorf("both user ids required")
	}
	rows, err := s.messageRepo.ListConversation(ctx, nil, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("listing conversation: %w: %w", ErrStoreUnavailable, err)
	}
	return rows, nil
}

func (s *chatService) MarkConversationRead(ctx context.Context, readerID, senderID uuid.UUID) error {
	if readerID == uuid.Nil || senderID == uuid.Nil {
		return fmt.Errorf("both user ids required")
	}
	if err := s.messageRepo.MarkRead(ctx, nil, readerID, senderID, time.Now().UTC()); err != nil {
		return fmt.Errorf("marking messages read: %w: %w", ErrStoreUnavailable, err)
	}
	return nil
}
