package repository

import (
	"errors"

	"homehub/internal/domain"
	"homehub/internal/models"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(p *models.PaymentTransaction) error {
	return r.db.Create(p).Error
}

func (r *PaymentRepository) GetByID(id uint) (*models.PaymentTransaction, error) {
	var p models.PaymentTransaction
	err := r.db.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByCheckoutRequestID looks a transaction up by the gateway correlation
// identifier. Returns nil when no attempt carries that identifier.
func (r *PaymentRepository) GetByCheckoutRequestID(checkoutRequestID string) (*models.PaymentTransaction, error) {
	var p models.PaymentTransaction
	err := r.db.Where("checkout_request_id = ?", checkoutRequestID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) SetCheckoutRequestID(id uint, checkoutRequestID, merchantRequestID string) error {
	return r.db.Model(&models.PaymentTransaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"checkout_request_id": checkoutRequestID,
			"merchant_request_id": merchantRequestID,
		}).Error
}

func (r *PaymentRepository) ListByBooking(bookingID uint) ([]models.PaymentTransaction, error) {
	var out []models.PaymentTransaction
	err := r.db.Where("booking_id = ?", bookingID).Order("transaction_time DESC").Find(&out).Error
	return out, err
}

func (r *PaymentRepository) ListByTenant(tenantID uint) ([]models.PaymentTransaction, error) {
	var out []models.PaymentTransaction
	err := r.db.
		Joins("JOIN bookings ON bookings.id = payment_transactions.booking_id").
		Where("bookings.tenant_id = ?", tenantID).
		Order("payment_transactions.transaction_time DESC").
		Find(&out).Error
	return out, err
}

// ListForLandlord uses the denormalized house reference so landlord-side
// queries skip the booking join.
func (r *PaymentRepository) ListForLandlord(landlordID uint) ([]models.PaymentTransaction, error) {
	var out []models.PaymentTransaction
	err := r.db.
		Joins("JOIN houses ON houses.id = payment_transactions.house_id").
		Where("houses.owner_id = ?", landlordID).
		Order("payment_transactions.transaction_time DESC").
		Find(&out).Error
	return out, err
}

func (r *PaymentRepository) CountSuccessfulByBooking(bookingID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.PaymentTransaction{}).
		Where("booking_id = ? AND status = ?", bookingID, domain.PaymentSuccess).
		Count(&n).Error
	return n, err
}
