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

type MembershipService interface {
	ListActivePlans(ctx context.Context) ([]*types.MembershipPlan, error)
	ListAllPlans(ctx context.Context) ([]*types.MembershipPlan, error)
	CreatePlan(ctx context.Context, row *types.MembershipPlan) (*types.MembershipPlan, error)
	UpdatePlan(ctx context.Context, row *types.MembershipPlan) (*types.MembershipPlan, error)
	DeletePlan(ctx context.Context, id uuid.UUID) error
	AssignPlan(ctx context.Context, userID, planID uuid.UUID) error
}

type membershipService struct {
	db       *gorm.DB
	log      *logger.Logger
	planRepo repos.MembershipPlanRepo
	userRepo repos.UserRepo
}

func NewMembershipService(db *gorm.DB, log *logger.Logger, planRepo repos.MembershipPlanRepo, userRepo repos.UserRepo) MembershipService {
	serviceLog := log.With("service", "MembershipService")
	return &membershipService{db: db, log: serviceLog, planRepo: planRepo, userRepo: userRepo}
}

func (s *membershipService) ListActivePlans(ctx context.Context) ([]*types.MembershipPlan, error) {
	plans, err := s.planRepo.ListActive(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w: %w", ErrStoreUnavailable, err)
	}
	return plans, nil
}

func (s *membershipService) ListAllPlans(ctx context.Context) ([]*types.MembershipPlan, error) {
	plans, err := s.planRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w: %w", ErrStoreUnavailable, err)
	}
	return plans, nil
}

func (s *membershipService) CreatePlan(ctx context.Context, row *types.MembershipPlan) (*types.MembershipPlan, error) {
	if row == nil || strings.TrimSpace(row.Name) == "" {
		return nil, fmt.Errorf("plan name required")
	}
	if row.Price < 0 {
		return nil, fmt.Errorf("price must be non-negative")
	}
	if row.DurationDays <= 0 {
		return nil, fmt.Errorf("duration_days must be positive")
	}
	return s.planRepo.Create(ctx, nil, row)
}

func (s *membershipService) UpdatePlan(ctx context.Context, row *types.MembershipPlan) (*types.MembershipPlan, error) {
	if row == nil || row.ID == uuid.Nil {
		return nil, fmt.Errorf("plan id required")
	}
	existing, err := s.planRepo.GetByID(ctx, nil, row.ID)
	if err != nil {
		return nil, fmt.Errorf("loading plan: %w: %w", ErrStoreUnavailable, err)
	}
	if existing == nil {
		return nil, fmt.Errorf("plan not found")
	}
	if err := s.planRepo.Update(ctx, nil, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *membershipService) DeletePlan(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("plan id required")
	}
	return s.planRepo.SoftDeleteByID(ctx, nil, id)
}

func (s *membershipService) AssignPlan(ctx context.Context, userID, planID uuid.UUID) error {
	if userID == uuid.Nil || planID == uuid.Nil {
		return fmt.Errorf("user id and plan id required")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		plan, err := s.planRepo.GetByID(ctx, tx, planID)
		if err != nil {
			return fmt.Errorf("loading plan: %w: %w", ErrStoreUnavailable, err)
		}
		if plan == nil || !plan.IsActive {
			return fmt.Errorf("plan not found")
		}
		user, err := s.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("loading user: %w: %w", ErrStoreUnavailable, err)
		}
		if user == nil {
			return fmt.Errorf("user not found")
		}
		return s.userRepo.UpdateMembershipPlan(ctx, tx, userID, &planID)
	})
}
