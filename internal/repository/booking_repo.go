package repository

import (
	"errors"

	"homehub/internal/models"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(b *models.Booking) error {
	return r.db.Create(b).Error
}

func (r *BookingRepository) GetByID(id uint) (*models.Booking, error) {
	var b models.Booking
	err := r.db.First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListByTenant(tenantID uint) ([]models.Booking, error) {
	var out []models.Booking
	err := r.db.Where("tenant_id = ?", tenantID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *BookingRepository) ListByHouse(houseID uint) ([]models.Booking, error) {
	var out []models.Booking
	err := r.db.Where("house_id = ?", houseID).Order("created_at DESC").Find(&out).Error
	return out, err
}

// ListForLandlord returns bookings against any house owned by the landlord.
func (r *BookingRepository) ListForLandlord(landlordID uint) ([]models.Booking, error) {
	var out []models.Booking
	err := r.db.
		Joins("JOIN houses ON houses.id = bookings.house_id").
		Where("houses.owner_id = ?", landlordID).
		Order("bookings.created_at DESC").
		Find(&out).Error
	return out, err
}

// TransitionStatus moves a booking from one status to another with a single
// conditional update. Returns false when the booking was not in `from`, so
// the loser of a concurrent race observes the conflict instead of silently
// double-applying.
func (r *BookingRepository) TransitionStatus(id uint, from, to string) (bool, error) {
	res := r.db.Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
