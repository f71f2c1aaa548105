package models

import (
	"time"
)

// PaymentTransaction is one STK push attempt for a booking. Retries create
// additional rows; the gateway callback resolves exactly one of them.
type PaymentTransaction struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"not null;index" json:"booking_id"`
	// HouseID is denormalized so landlord payment listings avoid a join
	// through bookings.
	HouseID uint `gorm:"not null;index" json:"house_id"`

	PhoneNumber string `gorm:"size:20" json:"phone_number"`
	AmountCents int64  `gorm:"not null" json:"amount_cents"`
	Purpose     string `gorm:"size:20;not null;default:'DEPOSIT'" json:"purpose"`

	// CheckoutRequestID is the gateway correlation identifier, set once the
	// initiation response arrives. The callback matcher uses it exclusively.
	CheckoutRequestID *string `gorm:"size:100;uniqueIndex" json:"checkout_request_id,omitempty"`
	MerchantRequestID string  `gorm:"size:100" json:"merchant_request_id,omitempty"`
	AccountReference  string  `gorm:"size:100" json:"account_reference"`

	// MpesaReceipt is unique when present; duplicate callback deliveries for
	// the same receipt cannot produce a second Success row.
	MpesaReceipt *string `gorm:"size:100;uniqueIndex" json:"mpesa_receipt,omitempty"`
	ResultCode   string  `gorm:"size:10" json:"result_code"`
	ResultDesc   string  `gorm:"size:255" json:"result_desc,omitempty"`

	Status          string    `gorm:"size:20;not null;default:'Pending';index" json:"status"`
	TransactionTime time.Time `gorm:"autoCreateTime" json:"transaction_time"`
	UpdatedAt       time.Time `json:"updated_at"`

	Booking Booking `gorm:"foreignKey:BookingID" json:"-"`
	House   House   `gorm:"foreignKey:HouseID" json:"-"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}
