package types

import (
	"time"

	"github.com/google/uuid"
)

// UnlockedAchievement records a one-time unlock. The composite unique index on
// (user_id, achievement_id) is what makes insert-if-absent safe under
// concurrent checks; rows are never updated, only hard-deleted by the
// administrative reset.
type UnlockedAchievement struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID    `gorm:"type:uuid;not null;index:idx_user_achievement,unique" json:"user_id"`
	User          *User        `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	AchievementID uuid.UUID    `gorm:"type:uuid;not null;index:idx_user_achievement,unique" json:"achievement_id"`
	Achievement   *Achievement `gorm:"constraint:OnDelete:CASCADE;foreignKey:AchievementID;references:ID" json:"achievement,omitempty"`
	EarnedAt      time.Time    `gorm:"column:earned_at;not null" json:"earned_at"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
}

func (UnlockedAchievement) TableName() string { return "unlocked_achievement" }
