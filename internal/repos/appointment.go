package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quitmate/quitmate-backend/internal/logger"
	"github.com/quitmate/quitmate-backend/internal/types"
)

type AppointmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Appointment) (*types.Appointment, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Appointment, error)
	ListByMemberID(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) ([]*types.Appointment, error)
	ListByCoachID(ctx context.Context, tx *gorm.DB, coachID uuid.UUID) ([]*types.Appointment, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error
}

type appointmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAppointmentRepo(db *gorm.DB, baseLog *logger.Logger) AppointmentRepo {
	repoLog := baseLog.With("repo", "AppointmentRepo")
	return &appointmentRepo{db: db, log: repoLog}
}

func (r *appointmentRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Appointment) (*types.Appointment, error) {
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

func (r *appointmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Appointment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil {
		return nil, nil
	}

	var result types.Appointment
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

func (r *appointmentRepo) ListByMemberID(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) ([]*types.Appointment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Appointment
	if memberID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("starts_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *appointmentRepo) ListByCoachID(ctx context.Context, tx *gorm.DB, coachID uuid.UUID) ([]*types.Appointment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Appointment
	if coachID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("coach_id = ?", coachID).
		Order("starts_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *appointmentRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}
