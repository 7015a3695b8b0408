package types

import (
	"time"

	"github.com/google/uuid"
)

// ProgressEntry is one row of the append-only progress log. DaysSmokeFree and
// MoneySaved are running totals supplied by the producer; the engine never
// derives them from CigarettesSmoked.
type ProgressEntry struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index:idx_progress_user_date" json:"user_id"`
	User             *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	EntryDate        time.Time `gorm:"column:entry_date;not null;index:idx_progress_user_date" json:"entry_date"`
	CigarettesSmoked int       `gorm:"not null;default:0" json:"cigarettes_smoked"`
	CravingLevel     int       `gorm:"not null;default:0" json:"craving_level"`
	DaysSmokeFree    int       `gorm:"not null;default:0" json:"days_smoke_free"`
	MoneySaved       int64     `gorm:"not null;default:0" json:"money_saved"`
	Note             string    `gorm:"column:note" json:"note,omitempty"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
}

func (ProgressEntry) TableName() string { return "progress_entry" }
