package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quitmate/quitmate-backend/internal/logger"
	"github.com/quitmate/quitmate-backend/internal/repos"
	"github.com/quitmate/quitmate-backend/internal/types"
)

type FeedbackService interface {
	// LeaveFeedback lets a member rate a coach after a completed appointment.
	LeaveFeedback(ctx context.Context, memberID, coachID uuid.UUID, rating int, comment string) (*types.CoachFeedback, error)
	ListForCoach(ctx context.Context, coachID uuid.UUID) ([]*types.CoachFeedback, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]*types.CoachFeedback, error)
}

type feedbackService struct {
	db              *gorm.DB
	log             *logger.Logger
	feedbackRepo    repos.CoachFeedbackRepo
	appointmentRepo repos.AppointmentRepo
	userRepo        repos.UserRepo
}

func NewFeedbackService(db *gorm.DB, log *logger.Logger, feedbackRepo repos.CoachFeedbackRepo, appointmentRepo repos.AppointmentRepo, userRepo repos.UserRepo) FeedbackService {
	serviceLog := log.With("service", "FeedbackService")
	return &feedbackService{
		db:              db,
		log:             serviceLog,
		feedbackRepo:    feedbackRepo,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
	}
}

func (s *feedbackService) LeaveFeedback(ctx context.Context, memberID, coachID uuid.UUID, rating int, comment string) (*types.CoachFeedback, error) {
	if memberID == uuid.Nil || coachID == uuid.Nil {
		return nil, fmt.Errorf("member id and coach id required")
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	coach, err := s.userRepo.GetByID(ctx, nil, coachID)
	if err != nil {
		return nil, fmt.Errorf("loading coach: %w: %w", ErrStoreUnavailable, err)
	}
	if coach == nil || coach.Role != types.RoleCoach {
		return nil, fmt.Errorf("coach not found")
	}

	appointments, err := s.appointmentRepo.ListByMemberID(ctx, nil, memberID)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w: %w", ErrStoreUnavailable, err)
	}
	hasCompleted := false
	for _, a := range appointments {
		if a.CoachID == coachID && a.Status == types.AppointmentCompleted {
			hasCompleted = true
			break
		}
	}
	if !hasCompleted {
		return nil, fmt.Errorf("feedback requires a completed appointment with this coach")
	}

	row := &types.CoachFeedback{
		ID:       uuid.New(),
		CoachID:  coachID,
		MemberID: memberID,
		Rating:   rating,
		Comment:  strings.TrimSpace(comment),
	}
	created, err := s.feedbackRepo.Create(ctx, nil, row)
	if err != nil {
		return nil, fmt.Errorf("creating feedback: %w: %w", ErrStoreUnavailable, err)
	}
	return created, nil
}

func (s *feedbackService) ListForCoach(ctx context.Context, coachID uuid.UUID) ([]*types.CoachFeedback, error) {
	if coachID == uuid.Nil {
		return nil, fmt.Errorf("coach id required")
	}
	rows, err := s.feedbackRepo.ListByCoachID(ctx, nil, coachID)
	if err != nil {
		return nil, fmt.Errorf("listing feedback: %w: %w", ErrStoreUnavailable, err)
	}
	return rows, nil
}

func (s *feedbackService) ListByMember(ctx context.Context, memberID uuid.UUID) ([]*types.CoachFeedback, error) {
	if memberID == uuid.Nil {
		return nil, fmt.Errorf("member id required")
	}
	rows, err := s.feedbackRepo.ListByMemberID(ctx, nil, memberID)
	if err != nil {
		return nil, fmt.Errorf("listing feedback: %w: %w", ErrStoreUnavailable, err)
	}
	return rows, nil
}
