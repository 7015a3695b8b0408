package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quitmate/quitmate-backend/internal/logger"
	"github.com/quitmate/quitmate-backend/internal/types"
)

type CoachFeedbackRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.CoachFeedback) (*types.CoachFeedback, error)
	ListByCoachID(ctx context.Context, tx *gorm.DB, coachID uuid.UUID) ([]*types.CoachFeedback, error)
	ListByMemberID(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) ([]*types.CoachFeedback, error)
}

type coachFeedbackRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCoachFeedbackRepo(db *gorm.DB, baseLog *logger.Logger) CoachFeedbackRepo {
	repoLog := baseLog.With("repo", "CoachFeedbackRepo")
	return &coachFeedbackRepo{db: db, log: repoLog}
}

func (r *coachFeedbackRepo) Create(ctx context.Context, tx *gorm.DB, row *types.CoachFeedback) (*types.CoachFeedback, error) {
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

func (r *coachFeedbackRepo) ListByCoachID(ctx context.Context, tx *gorm.DB, coachID uuid.UUID) ([]*types.CoachFeedback, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CoachFeedback
	if coachID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("coach_id = ?", coachID).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *coachFeedbackRepo) ListByMemberID(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) ([]*types.CoachFeedback, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CoachFeedback
	if memberID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
