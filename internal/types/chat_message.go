package types

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is the persisted record only; delivery happens elsewhere.
type ChatMessage struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_chat_pair" json:"sender_id"`
	Sender      *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:SenderID;references:ID" json:"sender,omitempty"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index:idx_chat_pair" json:"recipient_id"`
	Recipient   *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:RecipientID;references:ID" json:"recipient,omitempty"`
	Body        string     `gorm:"not null" json:"body"`
	SentAt      time.Time  `gorm:"column:sent_at;not null" json:"sent_at"`
	ReadAt      *time.Time `gorm:"column:read_at" json:"read_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_message" }
