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

type CreateUserInput struct {
	Email            string `json:"email"`
	FullName         string `json:"full_name"`
	Role             string `json:"role"`
	CigarettesPerDay int    `json:"cigarettes_per_day"`
	PricePerPack     int64  `json:"price_per_pack"`
}

type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*types.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*types.User, error)
	ListUsers(ctx context.Context, role string) ([]*types.User, error)
	// ListClients returns the coach's member roster.
	ListClients(ctx context.Context, coachID uuid.UUID) ([]*types.User, error)
	AssignCoach(ctx context.Context, memberID, coachID uuid.UUID) error
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

var validRoles = map[string]struct{}{
	types.RoleMember: {},
	types.RoleCoach:  {},
	types.RoleAdmin:  {},
}

func (s *userService) CreateUser(ctx context.Context, input CreateUserInput) (*types.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	fullName := strings.TrimSpace(input.FullName)
	if email == "" || fullName == "" {
		return nil, fmt.Errorf("email and full_name required")
	}
	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role == "" {
		role = types.RoleMember
	}
	if _, ok := validRoles[role]; !ok {
		return nil, fmt.Errorf("invalid role")
	}
	if input.CigarettesPerDay < 0 || input.PricePerPack < 0 {
		return nil, fmt.Errorf("cigarettes_per_day and price_per_pack must be non-negative")
	}

	existing, err := s.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("looking up email: %w: %w", ErrStoreUnavailable, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	row := &types.User{
		ID:               uuid.New(),
		Email:            email,
		FullName:         fullName,
		Role:             role,
		CigarettesPerDay: input.CigarettesPerDay,
		PricePerPack:     input.PricePerPack,
	}
	return s.userRepo.Create(ctx, nil, row)
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*types.User, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}
	user, err := s.userRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w: %w", ErrStoreUnavailable, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, role string) ([]*types.User, error) {
	users, err := s.userRepo.List(ctx, nil, strings.ToLower(strings.TrimSpace(role)))
	if err != nil {
		return nil, fmt.Errorf("listing users: %w: %w", ErrStoreUnavailable, err)
	}
	return users, nil
}

func (s *userService) ListClients(ctx context.Context, coachID uuid.UUID) ([]*types.User, error) {
	if coachID == uuid.Nil {
		return nil, fmt.Errorf("coach id required")
	}
	coach, err := s.userRepo.GetByID(ctx, nil, coachID)
	if err != nil {
		return nil, fmt.Errorf("loading coach: %w: %w", ErrStoreUnavailable, err)
	}
	if coach == nil || coach.Role != types.RoleCoach {
		return nil, fmt.Errorf("coach not found")
	}
	clients, err := s.userRepo.ListByCoachID(ctx, nil, coachID)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w: %w", ErrStoreUnavailable, err)
	}
	return clients, nil
}

func (s *userService) AssignCoach(ctx context.Context, memberID, coachID uuid.UUID) error {
	if memberID == uuid.Nil || coachID == uuid.Nil {
		return fmt.Errorf("member id and coach id required")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		member, err := s.userRepo.GetByID(ctx, tx, memberID)
		if err != nil {
			return fmt.Errorf("loading member: %w: %w", ErrStoreUnavailable, err)
		}
		if member == nil || member.Role != types.RoleMember {
			return fmt.Errorf("member not found")
		}
		coach, err := s.userRepo.GetByID(ctx, tx, coachID)
		if err != nil {
			return fmt.Errorf("loading coach: %w: %w", ErrStoreUnavailable, err)
		}
		if coach == nil || coach.Role != types.RoleCoach {
			return fmt.Errorf("coach not found")
		}
		return s.userRepo.UpdateCoach(ctx, tx, memberID, &coachID)
	})
}
