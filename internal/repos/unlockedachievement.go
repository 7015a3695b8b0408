package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quitmate/quitmate-backend/internal/logger"
	"github.com/quitmate/quitmate-backend/internal/types"
)

type UnlockedAchievementRepo interface {
	// InsertIfAbsent creates the unlock row unless one already exists for the
	// (user, achievement) pair. Returns whether this call created the row.
	InsertIfAbsent(ctx context.Context, tx *gorm.DB, row *types.UnlockedAchievement) (bool, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UnlockedAchievement, error)
	ListAchievementIDsByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type unlockedAchievementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUnlockedAchievementRepo(db *gorm.DB, baseLog *logger.Logger) UnlockedAchievementRepo {
	repoLog := baseLog.With("repo", "UnlockedAchievementRepo")
	return &unlockedAchievementRepo{db: db, log: repoLog}
}

func (r *unlockedAchievementRepo) InsertIfAbsent(ctx context.Context, tx *gorm.DB, row *types.UnlockedAchievement) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil || row.UserID == uuid.Nil || row.AchievementID == uuid.Nil {
		return false, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}

	// The unique index on (user_id, achievement_id) resolves the race at the
	// storage level; a losing insert is a silent no-op, never an error.
	result := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
			DoNothing: true,
		}).
		Create(row)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *unlockedAchievementRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UnlockedAchievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UnlockedAchievement
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Order("earned_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *unlockedAchievementRepo) ListAchievementIDsByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uuid.UUID
	if userID == uuid.Nil {
		return ids, nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.UnlockedAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteByUserID hard-deletes a user's unlock rows. Administrative reset only.
func (r *unlockedAchievementRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.UnlockedAchievement{}).Error
}
