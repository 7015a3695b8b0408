package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quitmate/quitmate-backend/internal/logger"
	"github.com/quitmate/quitmate-backend/internal/repos"
	"github.com/quitmate/quitmate-backend/internal/types"
)

type BookAppointmentInput struct {
	MemberID uuid.UUID `json:"member_id"`
	CoachID  uuid.UUID `json:"coach_id"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Note     string    `json:"note"`
}

type AppointmentService interface {
	Book(ctx context.Context, input BookAppointmentInput) (*types.Appointment, error)
	ListForMember(ctx context.Context, memberID uuid.UUID) ([]*types.Appointment, error)
	ListForCoach(ctx context.Context, coachID uuid.UUID) ([]*types.Appointment, error)
	Confirm(ctx context.Context, id uuid.UUID) (*types.Appointment, error)
	Complete(ctx context.Context, id uuid.UUID) (*types.Appointment, error)
	Cancel(ctx context.Context, id uuid.UUID) (*types.Appointment, error)
}

type appointmentService struct {
	db              *gorm.DB
	log             *logger.Logger
	appointmentRepo repos.AppointmentRepo
	userRepo        repos.UserRepo
}

func NewAppointmentService(db *gorm.DB, log *logger.Logger, appointmentRepo repos.AppointmentRepo, userRepo repos.UserRepo) AppointmentService {
	serviceLog := log.With("service", "AppointmentService")
	return &appointmentService{
		db:              db,
		log:             serviceLog,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
	}
}

// Legal transitions: pending -> confirmed|cancelled, confirmed -> completed|cancelled.
// Completed and cancelled are terminal.
var appointmentTransitions = map[string]map[string]struct{}{
	types.AppointmentPending: {
		types.AppointmentConfirmed: {},
		types.AppointmentCancelled: {},
	},
	types.AppointmentConfirmed: {
		types.AppointmentCompleted: {},
		types.AppointmentCancelled: {},
	},
}

func (s *appointmentService) Book(ctx context.Context, input BookAppointmentInput) (*types.Appointment, error) {
	if input.MemberID == uuid.Nil || input.CoachID == uuid.Nil {
		return nil, fmt.Errorf("member_id and coach_id required")
	}
	if input.StartsAt.IsZero() || input.EndsAt.IsZero() || !input.EndsAt.After(input.StartsAt) {
		return nil, fmt.Errorf("appointment must end after it starts")
	}

	member, err := s.userRepo.GetByID(ctx, nil, input.MemberID)
	if err != nil {
		return nil, fmt.Errorf("loading member: %w: %w", ErrStoreUnavailable, err)
	}
	if member == nil {
		return nil, fmt.Errorf("member not found")
	}
	coach, err := s.userRepo.GetByID(ctx, nil, input.CoachID)
	if err != nil {
		return nil, fmt.Errorf("loading coach: %w: %w", ErrStoreUnavailable, err)
	}
	if coach == nil || coach.Role != types.RoleCoach {
		return nil, fmt.Errorf("coach not found")
	}

	row := &types.Appointment{
		ID:       uuid.New(),
		MemberID: input.MemberID,
		CoachID:  input.CoachID,
		StartsAt: input.StartsAt,
		EndsAt:   input.EndsAt,
		Status:   types.AppointmentPending,
		Note:     input.Note,
	}
	created, err := s.appointmentRepo.Create(ctx, nil, row)
	if err != nil {
		return nil, fmt.Errorf("creating appointment: %w: %w", ErrStoreUnavailable, err)
	}
	s.log.Info("Appointment booked", "appointment_id", created.ID, "member_id", input.MemberID, "coach_id", input.CoachID)
	return created, nil
}

func (s *appointmentService) ListForMember(ctx context.Context, memberID uuid.UUID) ([]*types.Appointment, error) {
	if memberID == uuid.Nil {
		return nil, fmt.Errorf("member id required")
	}
	rows, err := s.appointmentRepo.ListByMemberID(ctx, nil, memberID)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w: %w", ErrStoreUnavailable, err)
	}
	return rows, nil
}

func (s *appointmentService) ListForCoach(ctx context.Context, coachID uuid.UUID) ([]*types.Appointment, error) {
	if coachID == uuid.Nil {
		return nil, fmt.Errorf("coach id required")
	}
	rows, err := s.appointmentRepo.ListByCoachID(ctx, nil, coachID)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w: %w", ErrStoreUnavailable, err)
	}
	return rows, nil
}

func (s *appointmentService) Confirm(ctx context.Context, id uuid.UUID) (*types.Appointment, error) {
	return s.transition(ctx, id, types.AppointmentConfirmed)
}

func (s *appointmentService) Complete(ctx context.Context, id uuid.UUID) (*types.Appointment, error) {
	return s.transition(ctx, id, types.AppointmentCompleted)
}

func (s *appointmentService) Cancel(ctx context.Context, id uuid.UUID) (*types.Appointment, error) {
	return s.transition(ctx, id, types.AppointmentCancelled)
}

func (s *appointmentService) transition(ctx context.Context, id uuid.UUID, target string) (*types.Appointment, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("appointment id required")
	}

	var out *types.Appointment
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.appointmentRepo.GetByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("loading appointment: %w: %w", ErrStoreUnavailable, err)
		}
		if row == nil {
			return fmt.Errorf("appointment not found")
		}
		allowed, ok := appointmentTransitions[row.Status]
		if !ok {
			return fmt.Errorf("appointment is %s and cannot change", row.Status)
		}
		if _, ok := allowed[target]; !ok {
			return fmt.Errorf("cannot move appointment from %s to %s", row.Status, target)
		}
		if err := s.appointmentRepo.UpdateStatus(ctx, tx, id, target); err != nil {
			return fmt.Errorf("updating appointment status: %w: %w", ErrStoreUnavailable, err)
		}
		row.Status = target
		out = row
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}
