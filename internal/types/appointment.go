package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type Appointment struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	MemberID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"member_id"`
	Member    *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:MemberID;references:ID" json:"member,omitempty"`
	CoachID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"coach_id"`
	Coach     *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:CoachID;references:ID" json:"coach,omitempty"`
	StartsAt  time.Time      `gorm:"column:starts_at;not null" json:"starts_at"`
	EndsAt    time.Time      `gorm:"column:ends_at;not null" json:"ends_at"`
	Status    string         `gorm:"not null;default:'pending'" json:"status"`
	Note      string         `gorm:"column:note" json:"note,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Appointment) TableName() string { return "appointment" }
