package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/quitmate/quitmate-backend/internal/logger"
	"github.com/quitmate/quitmate-backend/internal/repos"
	"github.com/quitmate/quitmate-backend/internal/types"
)

// ErrStoreUnavailable marks a transient data-access failure. CheckAndUnlock is
// idempotent, so callers may retry the whole call on it.
var ErrStoreUnavailable = errors.New("store unavailable")

// ProgressSummary is the reduced view of a user's full progress history used
// for qualification checks. Days are a max (the counter is a producer-supplied
// running total; summing would double count), money is a sum.
type ProgressSummary struct {
	MaxDaysSmokeFree int   `json:"max_days_smoke_free"`
	TotalMoneySaved  int64 `json:"total_money_saved"`
}

type AchievementService interface {
	// Evaluate returns the achievements the user newly qualifies for, in
	// ascending catalog id order. Read-only.
	Evaluate(ctx context.Context, userID uuid.UUID) ([]*types.Achievement, error)
	// RecordUnlocks persists unlocks for the given achievement ids and returns
	// the subset this call actually created. Idempotent per pair.
	RecordUnlocks(ctx context.Context, userID uuid.UUID, achievementIDs []uuid.UUID) ([]uuid.UUID, error)
	// CheckAndUnlock composes Evaluate and RecordUnlocks and returns the
	// achievements just unlocked by this call.
	CheckAndUnlock(ctx context.Context, userID uuid.UUID) ([]*types.Achievement, error)
	ListUnlocked(ctx context.Context, userID uuid.UUID) ([]*types.UnlockedAchievement, error)
	ResetUserAchievements(ctx context.Context, userID uuid.UUID) error

	ListCatalog(ctx context.Context) ([]*types.Achievement, error)
	SeedDefaultAchievements(ctx context.Context) error
	CreateAchievement(ctx context.Context, row *types.Achievement) (*types.Achievement, error)
	UpdateAchievement(ctx context.Context, row *types.Achievement) (*types.Achievement, error)
	SetAchievementActive(ctx context.Context, id uuid.UUID, active bool) error
}

type achievementService struct {
	db           *gorm.DB
	log          *logger.Logger
	entryRepo    repos.ProgressEntryRepo
	catalogRepo  repos.AchievementRepo
	unlockedRepo repos.UnlockedAchievementRepo
	notifier     UnlockNotifier
}

func NewAchievementService(
	db *gorm.DB,
	log *logger.Logger,
	entryRepo repos.ProgressEntryRepo,
	catalogRepo repos.AchievementRepo,
	unlockedRepo repos.UnlockedAchievementRepo,
	notifier UnlockNotifier,
) AchievementService {
	serviceLog := log.With("service", "AchievementService")
	if notifier == nil {
		notifier = NewNopUnlockNotifier()
	}
	return &achievementService{
		db:           db,
		log:          serviceLog,
		entryRepo:    entryRepo,
		catalogRepo:  catalogRepo,
		unlockedRepo: unlockedRepo,
		notifier:     notifier,
	}
}

func reduceProgressSummary(entries []*types.ProgressEntry) ProgressSummary {
	var summary ProgressSummary
	for _, e := range entries {
		if e == nil {
			continue
		}
		if e.DaysSmokeFree > summary.MaxDaysSmokeFree {
			summary.MaxDaysSmokeFree = e.DaysSmokeFree
		}
		summary.TotalMoneySaved += e.MoneySaved
	}
	return summary
}

// qualifies applies OR semantics: a definition with both thresholds set
// unlocks when either is met.
func qualifies(a *types.Achievement, summary ProgressSummary) bool {
	if a.MilestoneDays != nil && summary.MaxDaysSmokeFree >= *a.MilestoneDays {
		return true
	}
	if a.SavedMoneyThreshold != nil && summary.TotalMoneySaved >= *a.SavedMoneyThreshold {
		return true
	}
	return false
}

func (s *achievementService) Evaluate(ctx context.Context, userID uuid.UUID) ([]*types.Achievement, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}

	var (
		entries     []*types.ProgressEntry
		candidates  []*types.Achievement
		unlockedIDs []uuid.UUID
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = s.entryRepo.GetByUserID(gctx, nil, userID)
		if err != nil {
			return fmt.Errorf("listing progress entries: %w: %w", ErrStoreUnavailable, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		candidates, err = s.catalogRepo.ListActive(gctx, nil)
		if err != nil {
			return fmt.Errorf("listing active achievements: %w: %w", ErrStoreUnavailable, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		unlockedIDs, err = s.unlockedRepo.ListAchievementIDsByUserID(gctx, nil, userID)
		if err != nil {
			return fmt.Errorf("listing unlocked achievements: %w: %w", ErrStoreUnavailable, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// A user with no entries gets a zero summary, not an error.
	summary := reduceProgressSummary(entries)

	unlocked := make(map[uuid.UUID]struct{}, len(unlockedIDs))
	for _, id := range unlockedIDs {
		unlocked[id] = struct{}{}
	}

	qualifying := []*types.Achievement{}
	for _, a := range candidates {
		if _, done := unlocked[a.ID]; done {
			continue
		}
		if a.MilestoneDays == nil && a.SavedMoneyThreshold == nil {
			s.log.Warn("Achievement definition has no thresholds, skipping", "achievement_id", a.ID, "name", a.Name)
			continue
		}
		if qualifies(a, summary) {
			qualifying = append(qualifying, a)
		}
	}

	s.log.Debug("Evaluated achievements",
		"user_id", userID,
		"max_days_smoke_free", summary.MaxDaysSmokeFree,
		"total_money_saved", summary.TotalMoneySaved,
		"qualifying", len(qualifying),
	)
	return qualifying, nil
}

func (s *achievementService) RecordUnlocks(ctx context.Context, userID uuid.UUID, achievementIDs []uuid.UUID) ([]uuid.UUID, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}

	created := []uuid.UUID{}
	if len(achievementIDs) == 0 {
		return created, nil
	}

	now := time.Now().UTC()
	var firstErr error
	failed := 0
	for _, achievementID := range achievementIDs {
		row := &types.UnlockedAchievement{
			ID:            uuid.New(),
			UserID:        userID,
			AchievementID: achievementID,
			EarnedAt:      now,
		}
		wasCreated, err := s.unlockedRepo.InsertIfAbsent(ctx, nil, row)
		if err != nil {
			// One failed insert must not abort the batch; a retry of the whole
			// call picks the remainder up safely.
			s.log.Warn("Unlock insert failed, continuing batch", "user_id", userID, "achievement_id", achievementID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			failed++
			continue
		}
		if wasCreated {
			created = append(created, achievementID)
		}
	}

	if failed == len(achievementIDs) {
		return created, fmt.Errorf("recording unlocks: %w: %w", ErrStoreUnavailable, firstErr)
	}
	return created, nil
}

func (s *achievementService) CheckAndUnlock(ctx context.Context, userID uuid.UUID) ([]*types.Achievement, error) {
	qualifying, err := s.Evaluate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(qualifying) == 0 {
		return []*types.Achievement{}, nil
	}

	ids := make([]uuid.UUID, 0, len(qualifying))
	for _, a := range qualifying {
		ids = append(ids, a.ID)
	}

	createdIDs, err := s.RecordUnlocks(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	createdSet := make(map[uuid.UUID]struct{}, len(createdIDs))
	for _, id := range createdIDs {
		createdSet[id] = struct{}{}
	}

	now := time.Now().UTC()
	justUnlocked := []*types.Achievement{}
	for _, a := range qualifying {
		if _, ok := createdSet[a.ID]; !ok {
			continue
		}
		justUnlocked = append(justUnlocked, a)
		if err := s.notifier.NotifyUnlock(ctx, eventForUnlock(userID, a, now)); err != nil {
			s.log.Warn("Unlock notification failed", "user_id", userID, "achievement_id", a.ID, "error", err)
		}
	}

	if len(justUnlocked) > 0 {
		s.log.Info("Achievements unlocked", "user_id", userID, "count", len(justUnlocked))
	}
	return justUnlocked, nil
}

func (s *achievementService) ListUnlocked(ctx context.Context, userID uuid.UUID) ([]*types.UnlockedAchievement, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}
	rows, err := s.unlockedRepo.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("listing unlocked achievements: %w: %w", ErrStoreUnavailable, err)
	}
	return rows, nil
}

// ResetUserAchievements wipes a user's unlock history. Administrative surface
// only; the engine itself never deletes unlock rows.
func (s *achievementService) ResetUserAchievements(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("user id required")
	}
	if err := s.unlockedRepo.DeleteByUserID(ctx, nil, userID); err != nil {
		return fmt.Errorf("resetting achievements: %w: %w", ErrStoreUnavailable, err)
	}
	s.log.Info("User achievements reset", "user_id", userID)
	return nil
}

func (s *achievementService) ListCatalog(ctx context.Context) ([]*types.Achievement, error) {
	rows, err := s.catalogRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("listing achievement catalog: %w: %w", ErrStoreUnavailable, err)
	}
	return rows, nil
}

func (s *achievementService) CreateAchievement(ctx context.Context, row *types.Achievement) (*types.Achievement, error) {
	if row == nil || row.Name == "" {
		return nil, fmt.Errorf("achievement name required")
	}
	if row.MilestoneDays == nil && row.SavedMoneyThreshold == nil {
		return nil, fmt.Errorf("achievement needs a milestone_days or saved_money_threshold")
	}
	if row.MilestoneDays != nil && *row.MilestoneDays < 0 {
		return nil, fmt.Errorf("milestone_days must be non-negative")
	}
	if row.SavedMoneyThreshold != nil && *row.SavedMoneyThreshold < 0 {
		return nil, fmt.Errorf("saved_money_threshold must be non-negative")
	}
	return s.catalogRepo.Create(ctx, nil, row)
}

func (s *achievementService) UpdateAchievement(ctx context.Context, row *types.Achievement) (*types.Achievement, error) {
	if row == nil || row.ID == uuid.Nil {
		return nil, fmt.Errorf("achievement id required")
	}
	existing, err := s.catalogRepo.GetByID(ctx, nil, row.ID)
	if err != nil {
		return nil, fmt.Errorf("loading achievement: %w: %w", ErrStoreUnavailable, err)
	}
	if existing == nil {
		return nil, fmt.Errorf("achievement not found")
	}
	if err := s.catalogRepo.Update(ctx, nil, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *achievementService) SetAchievementActive(ctx context.Context, id uuid.UUID, active bool) error {
	if id == uuid.Nil {
		return fmt.Errorf("achievement id required")
	}
	return s.catalogRepo.SetActive(ctx, nil, id, active)
}
