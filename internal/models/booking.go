package models

import (
	"time"
)

type Booking struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"not null;index" json:"tenant_id"`
	HouseID  uint `gorm:"not null;index" json:"house_id"`

	FirstName      string `gorm:"size:100;not null" json:"first_name"`
	LastName       string `gorm:"size:100;not null" json:"last_name"`
	Email          string `gorm:"size:150;not null" json:"email"`
	Phone          string `gorm:"size:50;not null" json:"phone"`
	CurrentAddress string `gorm:"size:255" json:"current_address"`

	MoveInDate      time.Time `gorm:"not null" json:"move_in_date"`
	LeaseTerm       string    `gorm:"size:20" json:"lease_term"`
	StayDuration    string    `gorm:"size:50" json:"stay_duration,omitempty"`
	SpecialRequests string    `gorm:"type:text" json:"special_requests,omitempty"`
	OccupantsCount  int       `json:"occupants_count"`
	Pets            string    `gorm:"size:10" json:"pets"`

	EmergencyContactName         string `gorm:"size:100" json:"emergency_contact_name"`
	EmergencyContactPhone        string `gorm:"size:50" json:"emergency_contact_phone"`
	EmergencyContactRelationship string `gorm:"size:100" json:"emergency_contact_relationship"`

	PaymentMethod string `gorm:"size:50" json:"payment_method"`
	AgreeTerms    bool   `gorm:"default:false" json:"agree_terms"`

	// Status is only written through conditional updates so concurrent
	// transitions cannot double-apply.
	Status        string `gorm:"size:50;not null;default:'Pending';index" json:"status"`
	DepositPaid   bool   `gorm:"not null;default:false" json:"deposit_paid"`
	PaymentStatus string `gorm:"size:20;not null;default:'Pending'" json:"payment_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tenant User  `gorm:"foreignKey:TenantID" json:"-"`
	House  House `gorm:"foreignKey:HouseID" json:"-"`
}

func (Booking) TableName() string {
	return "bookings"
}
