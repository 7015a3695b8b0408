package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MembershipPlan struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Description  string         `gorm:"column:description" json:"description"`
	Price        int64          `gorm:"not null;default:0" json:"price"`
	DurationDays int            `gorm:"not null" json:"duration_days"`
	Features     datatypes.JSON `gorm:"type:jsonb;column:features" json:"features"`
	IsActive     bool           `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (MembershipPlan) TableName() string { return "membership_plan" }
