package models

import (
	"time"
)

type ServiceProvider struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Service     string `gorm:"size:200" json:"service"`
	ServiceType string `gorm:"size:100" json:"service_type"`
	Phone       string `gorm:"size:20" json:"phone"`
	Description string `gorm:"type:text" json:"description"`
	Location    string `gorm:"size:255;default:'Not specified'" json:"location"`
	Available   bool   `gorm:"not null;default:true" json:"available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (ServiceProvider) TableName() string {
	return "service_providers"
}

type ServiceRequest struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	TenantID          uint       `gorm:"not null;index" json:"tenant_id"`
	ServiceProviderID uint       `gorm:"not null;index" json:"service_provider_id"`
	Description       string     `gorm:"type:text;not null" json:"description"`
	Status            string     `gorm:"size:50;not null;default:'Pending'" json:"status"`
	AmountCents       int64      `json:"amount_cents,omitempty"`
	Date              time.Time  `gorm:"not null" json:"date"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tenant          User            `gorm:"foreignKey:TenantID" json:"-"`
	ServiceProvider ServiceProvider `gorm:"foreignKey:ServiceProviderID" json:"-"`
}

func (ServiceRequest) TableName() string {
	return "service_requests"
}
