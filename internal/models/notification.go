package models

import (
	"time"
)

type Notification struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	Message string `gorm:"type:text;not null" json:"message"`
	IsRead  bool   `gorm:"not null;default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}
