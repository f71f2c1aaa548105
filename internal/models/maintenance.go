package models

import (
	"time"
)

type MaintenanceRequest struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID uint   `gorm:"not null;index" json:"tenant_id"`
	HouseID  uint   `gorm:"not null;index" json:"house_id"`
	Issue    string `gorm:"size:200;not null" json:"issue"`
	Status   string `gorm:"size:20;not null;default:'Open'" json:"status"`

	DateSubmitted time.Time `gorm:"autoCreateTime" json:"date_submitted"`
	UpdatedAt     time.Time `json:"updated_at"`

	Tenant User  `gorm:"foreignKey:TenantID" json:"-"`
	House  House `gorm:"foreignKey:HouseID" json:"-"`
}

func (MaintenanceRequest) TableName() string {
	return "maintenance_requests"
}
