package types

import (
	"time"

	"github.com/google/uuid"
)

// Achievement is immutable catalog data. A definition qualifies on smoke-free
// days, on saved money, or on either when both thresholds are set.
type Achievement struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name                string    `gorm:"not null" json:"name"`
	Description         string    `gorm:"column:description" json:"description"`
	MilestoneDays       *int      `gorm:"column:milestone_days" json:"milestone_days,omitempty"`
	SavedMoneyThreshold *int64    `gorm:"column:saved_money_threshold" json:"saved_money_threshold,omitempty"`
	Category            string    `gorm:"column:category" json:"category"`
	Difficulty          string    `gorm:"column:difficulty" json:"difficulty"`
	Points              int       `gorm:"not null;default:0" json:"points"`
	IsActive            bool      `gorm:"not null" json:"is_active"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null" json:"updated_at"`
}

func (Achievement) TableName() string { return "achievement" }
