package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/quitmate/quitmate-backend/internal/types"
)

// UnlockEvent is emitted once per newly recorded unlock. The engine publishes
// it and nothing more; delivery to clients belongs to the surrounding app.
type UnlockEvent struct {
	UserID          uuid.UUID `json:"user_id"`
	AchievementID   uuid.UUID `json:"achievement_id"`
	AchievementName string    `json:"achievement_name"`
	Points          int       `json:"points"`
	EarnedAt        time.Time `json:"earned_at"`
}

type UnlockNotifier interface {
	NotifyUnlock(ctx context.Context, event UnlockEvent) error
}

type nopUnlockNotifier struct{}

func (nopUnlockNotifier) NotifyUnlock(ctx context.Context, event UnlockEvent) error { return nil }

// NewNopUnlockNotifier is used when no event bus is configured.
func NewNopUnlockNotifier() UnlockNotifier { return nopUnlockNotifier{} }

func eventForUnlock(userID uuid.UUID, a *types.Achievement, earnedAt time.Time) UnlockEvent {
	return UnlockEvent{
		UserID:          userID,
		AchievementID:   a.ID,
		AchievementName: a.Name,
		Points:          a.Points,
		EarnedAt:        earnedAt,
	}
}
