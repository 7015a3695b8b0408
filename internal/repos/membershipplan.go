package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quitmate/quitmate-backend/internal/logger"
	"github.com/quitmate/quitmate-backend/internal/types"
)

type MembershipPlanRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.MembershipPlan) (*types.MembershipPlan, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.MembershipPlan) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MembershipPlan, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.MembershipPlan, error)
	ListActive(ctx context.Context, tx *gorm.DB) ([]*types.MembershipPlan, error)
	SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type membershipPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMembershipPlanRepo(db *gorm.DB, baseLog *logger.Logger) MembershipPlanRepo {
	repoLog := baseLog.With("repo", "MembershipPlanRepo")
	return &membershipPlanRepo{db: db, log: repoLog}
}

func (r *membershipPlanRepo) Create(ctx context.Context, tx *gorm.DB, row *types.MembershipPlan) (*types.MembershipPlan, error) {
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

func (r *membershipPlanRepo) Update(ctx context.Context, tx *gorm.DB, row *types.MembershipPlan) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil || row.ID == uuid.Nil {
		return nil
	}

	return transaction.WithContext(ctx).Save(row).Error
}

func (r *membershipPlanRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MembershipPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil {
		return nil, nil
	}

	var result types.MembershipPlan
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

func (r *membershipPlanRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.MembershipPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MembershipPlan
	if err := transaction.WithContext(ctx).
		Order("price").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *membershipPlanRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.MembershipPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MembershipPlan
	if err := transaction.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *membershipPlanRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.MembershipPlan{}).Error
}
