package models

import (
	"time"
)

type SupportTicket struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	Subject     string `gorm:"size:200;not null" json:"subject"`
	Description string `gorm:"type:text;not null" json:"description"`
	Status      string `gorm:"size:50;not null;default:'open'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (SupportTicket) TableName() string {
	return "support_tickets"
}

// SupportMessage is one line of the support chat between a user and an agent.
// AgentID is nil until an agent picks the conversation up.
type SupportMessage struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	AgentID *uint  `gorm:"index" json:"agent_id,omitempty"`
	Message string `gorm:"type:text;not null" json:"message"`
	IsRead  bool   `gorm:"not null;default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`

	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Agent *User `gorm:"foreignKey:AgentID" json:"-"`
}

func (SupportMessage) TableName() string {
	return "support_messages"
}
