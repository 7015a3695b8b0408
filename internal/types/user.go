package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleMember = "member"
	RoleCoach  = "coach"
	RoleAdmin  = "admin"
)

type User struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Email            string          `gorm:"uniqueIndex;not null" json:"email"`
	FullName         string          `gorm:"not null" json:"full_name"`
	Role             string          `gorm:"not null;default:'member'" json:"role"`
	CoachID          *uuid.UUID      `gorm:"type:uuid;index" json:"coach_id,omitempty"`
	Coach            *User           `gorm:"foreignKey:CoachID;references:ID" json:"coach,omitempty"`
	MembershipPlanID *uuid.UUID      `gorm:"type:uuid;index" json:"membership_plan_id,omitempty"`
	MembershipPlan   *MembershipPlan `gorm:"foreignKey:MembershipPlanID;references:ID" json:"membership_plan,omitempty"`
	QuitDate         *time.Time      `gorm:"column:quit_date" json:"quit_date,omitempty"`
	CigarettesPerDay int             `gorm:"not null;default:0" json:"cigarettes_per_day"`
	PricePerPack     int64           `gorm:"not null;default:0" json:"price_per_pack"`
	CreatedAt        time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null" json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }
