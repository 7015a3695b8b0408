package types

import (
	"time"

	"github.com/google/uuid"
)

type CoachFeedback struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CoachID   uuid.UUID `gorm:"type:uuid;not null;index" json:"coach_id"`
	Coach     *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:CoachID;references:ID" json:"coach,omitempty"`
	MemberID  uuid.UUID `gorm:"type:uuid;not null;index" json:"member_id"`
	Member    *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:MemberID;references:ID" json:"member,omitempty"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"column:comment" json:"comment"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (CoachFeedback) TableName() string { return "coach_feedback" }
