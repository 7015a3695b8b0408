package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quitmate/quitmate-backend/internal/logger"
	"github.com/quitmate/quitmate-backend/internal/types"
)

type ProgressEntryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.ProgressEntry) (*types.ProgressEntry, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ProgressEntry, error)
}

type progressEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressEntryRepo(db *gorm.DB, baseLog *logger.Logger) ProgressEntryRepo {
	repoLog := baseLog.With("repo", "ProgressEntryRepo")
	return &progressEntryRepo{db: db, log: repoLog}
}

func (r *progressEntryRepo) Create(ctx context.Context, tx *gorm.DB, row *types.ProgressEntry) (*types.ProgressEntry, error) {
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

// GetByUserID returns the user's full history, oldest first. The log is
// append-only so this is a full scan per evaluation.
func (r *progressEntryRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ProgressEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ProgressEntry
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_date").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
