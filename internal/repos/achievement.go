package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quitmate/quitmate-backend/internal/logger"
	"github.com/quitmate/quitmate-backend/internal/types"
)

type AchievementRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Achievement) (*types.Achievement, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.Achievement) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Achievement, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Achievement, error)
	ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Achievement, error)
	SetActive(ctx context.Context, tx *gorm.DB, id uuid.UUID, active bool) error
}

type achievementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAchievementRepo(db *gorm.DB, baseLog *logger.Logger) AchievementRepo {
	repoLog := baseLog.With("repo", "AchievementRepo")
	return &achievementRepo{db: db, log: repoLog}
}

func (r *achievementRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Achievement) (*types.Achievement, error) {
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

func (r *achievementRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Achievement) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil || row.ID == uuid.Nil {
		return nil
	}

	return transaction.WithContext(ctx).Save(row).Error
}

func (r *achievementRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Achievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil {
		return nil, nil
	}

	var result types.Achievement
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *achievementRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Achievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Achievement
	if err := transaction.WithContext(ctx).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListActive returns active definitions in ascending id order; evaluation
// depends on this ordering being stable.
func (r *achievementRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Achievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Achievement
	if err := transaction.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *achievementRepo) SetActive(ctx context.Context, tx *gorm.DB, id uuid.UUID, active bool) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.Achievement{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}
