package repository

import (
	"errors"

	"homehub/internal/models"

	"gorm.io/gorm"
)

type MaintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

func (r *MaintenanceRepository) Create(m *models.MaintenanceRequest) error {
	return r.db.Create(m).Error
}

func (r *MaintenanceRepository) GetByID(id uint) (*models.MaintenanceRequest, error) {
	var m models.MaintenanceRequest
	err := r.db.First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaintenanceRepository) ListByTenant(tenantID uint) ([]models.MaintenanceRequest, error) {
	var out []models.MaintenanceRequest
	err := r.db.Where("tenant_id = ?", tenantID).Order("date_submitted DESC").Find(&out).Error
	return out, err
}

func (r *MaintenanceRepository) ListForLandlord(landlordID uint) ([]models.MaintenanceRequest, error) {
	var out []models.MaintenanceRequest
	err := r.db.
		Joins("JOIN houses ON houses.id = maintenance_requests.house_id").
		Where("houses.owner_id = ?", landlordID).
		Order("maintenance_requests.date_submitted DESC").
		Find(&out).Error
	return out, err
}

func (r *MaintenanceRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.MaintenanceRequest{}).Where("id = ?", id).Update("status", status).Error
}
