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

type RecordEntryInput struct {
	EntryDate        time.Time `json:"entry_date"`
	CigarettesSmoked int       `json:"cigarettes_smoked"`
	CravingLevel     int       `json:"craving_level"`
	DaysSmokeFree    int       `json:"days_smoke_free"`
	MoneySaved       int64     `json:"money_saved"`
	Note             string    `json:"note"`
}

type ProgressService interface {
	// RecordEntry appends a progress entry and runs the achievement check as a
	// post-write hook, returning whatever it unlocked.
	RecordEntry(ctx context.Context, userID uuid.UUID, input RecordEntryInput) (*types.ProgressEntry, []*types.Achievement, error)
	ListEntries(ctx context.Context, userID uuid.UUID) ([]*types.ProgressEntry, error)
	GetSummary(ctx context.Context, userID uuid.UUID) (ProgressSummary, error)
}

type progressService struct {
	db                 *gorm.DB
	log                *logger.Logger
	entryRepo          repos.ProgressEntryRepo
	userRepo           repos.UserRepo
	achievementService AchievementService
}

func NewProgressService(db *gorm.DB, log *logger.Logger, entryRepo repos.ProgressEntryRepo, userRepo repos.UserRepo, achievementService AchievementService) ProgressService {
	serviceLog := log.With("service", "ProgressService")
	return &progressService{
		db:                 db,
		log:                serviceLog,
		entryRepo:          entryRepo,
		userRepo:           userRepo,
		achievementService: achievementService,
	}
}

func (s *progressService) RecordEntry(ctx context.Context, userID uuid.UUID, input RecordEntryInput) (*types.ProgressEntry, []*types.Achievement, error) {
	if userID == uuid.Nil {
		return nil, nil, fmt.Errorf("user id required")
	}
	if input.CigarettesSmoked < 0 {
		return nil, nil, fmt.Errorf("cigarettes_smoked must be non-negative")
	}
	if input.DaysSmokeFree < 0 {
		return nil, nil, fmt.Errorf("days_smoke_free must be non-negative")
	}
	if input.MoneySaved < 0 {
		return nil, nil, fmt.Errorf("money_saved must be non-negative")
	}

	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading user: %w: %w", ErrStoreUnavailable, err)
	}
	if user == nil {
		return nil, nil, fmt.Errorf("user not found")
	}

	entryDate := input.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	row := &types.ProgressEntry{
		ID:               uuid.New(),
		UserID:           userID,
		EntryDate:        entryDate,
		CigarettesSmoked: input.CigarettesSmoked,
		CravingLevel:     input.CravingLevel,
		DaysSmokeFree:    input.DaysSmokeFree,
		MoneySaved:       input.MoneySaved,
		Note:             input.Note,
	}
	entry, err := s.entryRepo.Create(ctx, nil, row)
	if err != nil {
		return nil, nil, fmt.Errorf("creating progress entry: %w: %w", ErrStoreUnavailable, err)
	}

	// The entry is durable at this point. A failed achievement check is not a
	// failed write; the next check picks the unlocks up because the engine is
	// idempotent.
	justUnlocked, err := s.achievementService.CheckAndUnlock(ctx, userID)
	if err != nil {
		s.log.Warn("Achievement check after progress write failed", "user_id", userID, "error", err)
		justUnlocked = []*types.Achievement{}
	}

	return entry, justUnlocked, nil
}

func (s *progressService) ListEntries(ctx context.Context, userID uuid.UUID) ([]*types.ProgressEntry, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}
	entries, err := s.entryRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("listing progress entries: %w: %w", ErrStoreUnavailable, err)
	}
	return entries, nil
}

func (s *progressService) GetSummary(ctx context.Context, userID uuid.UUID) (ProgressSummary, error) {
	if userID == uuid.Nil {
		return ProgressSummary{}, fmt.Errorf("user id required")
	}
	entries, err := s.entryRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return ProgressSummary{}, fmt.Errorf("listing progress entries: %w: %w", ErrStoreUnavailable, err)
	}
	return reduceProgressSummary(entries), nil
}
