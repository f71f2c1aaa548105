package models

import (
	"time"

	"gorm.io/gorm"
)

type House struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Title        string `gorm:"size:200;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	PropertyType string `gorm:"size:50" json:"property_type"`
	Location     string `gorm:"size:255;not null;index" json:"location"`
	Available    bool   `gorm:"not null;default:true;index" json:"available"`
	OwnerID      uint   `gorm:"not null;index" json:"owner_id"`

	AddressLine1  string `gorm:"size:255" json:"address_line1"`
	AddressLine2  string `gorm:"size:255" json:"address_line2,omitempty"`
	City          string `gorm:"size:100" json:"city"`
	StateProvince string `gorm:"size:100" json:"state_province"`
	PostalCode    string `gorm:"size:20" json:"postal_code"`
	Country       string `gorm:"size:100" json:"country"`

	RentAmountCents      int64      `gorm:"not null" json:"rent_amount_cents"`
	SecurityDepositCents int64      `gorm:"not null" json:"security_deposit_cents"`
	Bedrooms             int        `json:"bedrooms"`
	Bathrooms            float64    `json:"bathrooms"`
	Size                 string     `gorm:"size:50" json:"size"`
	LeaseTerm            string     `gorm:"size:50" json:"lease_term"`
	AvailabilityDate     *time.Time `json:"availability_date"`

	Utilities           string `gorm:"type:text" json:"utilities"`
	PetsAllowed         string `gorm:"size:10" json:"pets_allowed"`
	PetRestrictions     string `gorm:"size:255" json:"pet_restrictions,omitempty"`
	ParkingAvailability string `gorm:"size:50" json:"parking_availability"`
	FurnishedStatus     string `gorm:"size:50" json:"furnished_status"`
	Amenities           string `gorm:"type:text" json:"amenities"`
	SmokingPolicy       string `gorm:"size:50" json:"smoking_policy"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (House) TableName() string {
	return "houses"
}

// PaymentMethods is the per-house set of landlord-accepted payment options.
type PaymentMethods struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	HouseID uint `gorm:"not null;uniqueIndex" json:"house_id"`

	MpesaTillNumber   string `gorm:"size:10" json:"mpesa_till_number,omitempty"`
	MpesaBusinessName string `gorm:"size:100" json:"mpesa_business_name,omitempty"`
	MpesaEnabled      bool   `gorm:"default:false" json:"mpesa_enabled"`

	PaybillNumber        string `gorm:"size:10" json:"paybill_number,omitempty"`
	PaybillAccountNumber string `gorm:"size:50" json:"paybill_account_number,omitempty"`
	PaybillEnabled       bool   `gorm:"default:false" json:"paybill_enabled"`

	BankName      string `gorm:"size:100" json:"bank_name,omitempty"`
	BankBranch    string `gorm:"size:100" json:"bank_branch,omitempty"`
	AccountName   string `gorm:"size:100" json:"account_name,omitempty"`
	AccountNumber string `gorm:"size:50" json:"account_number,omitempty"`
	BankEnabled   bool   `gorm:"default:false" json:"bank_enabled"`

	SendMoneyPhone   string `gorm:"size:20" json:"send_money_phone,omitempty"`
	SendMoneyName    string `gorm:"size:100" json:"send_money_name,omitempty"`
	SendMoneyEnabled bool   `gorm:"default:false" json:"send_money_enabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PaymentMethods) TableName() string {
	return "payment_methods"
}
