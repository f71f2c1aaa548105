package repository

import (
	"errors"

	"homehub/internal/models"

	"gorm.io/gorm"
)

type HouseRepository struct {
	db *gorm.DB
}

func NewHouseRepository(db *gorm.DB) *HouseRepository {
	return &HouseRepository{db: db}
}

func (r *HouseRepository) Create(h *models.House) error {
	return r.db.Create(h).Error
}

func (r *HouseRepository) GetByID(id uint) (*models.House, error) {
	var h models.House
	err := r.db.First(&h, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HouseRepository) Update(h *models.House) error {
	return r.db.Save(h).Error
}

func (r *HouseRepository) Delete(id uint) error {
	return r.db.Delete(&models.House{}, id).Error
}

func (r *HouseRepository) ListByOwner(ownerID uint) ([]models.House, error) {
	var out []models.House
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&out).Error
	return out, err
}

// Search matches location or title, available houses first.
func (r *HouseRepository) Search(query string) ([]models.House, error) {
	var out []models.House
	q := r.db.Order("available DESC, created_at DESC")
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("location LIKE ? OR title LIKE ?", like, like)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *HouseRepository) SetAvailable(id uint, available bool) error {
	return r.db.Model(&models.House{}).Where("id = ?", id).Update("available", available).Error
}

func (r *HouseRepository) GetPaymentMethods(houseID uint) (*models.PaymentMethods, error) {
	var pm models.PaymentMethods
	err := r.db.Where("house_id = ?", houseID).First(&pm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pm, nil
}

func (r *HouseRepository) UpsertPaymentMethods(pm *models.PaymentMethods) error {
	existing, err := r.GetPaymentMethods(pm.HouseID)
	if err != nil {
		return err
	}
	if existing != nil {
		pm.ID = existing.ID
		return r.db.Save(pm).Error
	}
	return r.db.Create(pm).Error
}
