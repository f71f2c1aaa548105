package repository

import (
	"errors"
	"time"

	"homehub/internal/domain"
	"homehub/internal/models"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) CreateProvider(p *models.ServiceProvider) error {
	return r.db.Create(p).Error
}

func (r *ServiceRepository) GetProviderByID(id uint) (*models.ServiceProvider, error) {
	var p models.ServiceProvider
	err := r.db.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ServiceRepository) GetProviderByUserID(userID uint) (*models.ServiceProvider, error) {
	var p models.ServiceProvider
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ServiceRepository) UpdateProvider(p *models.ServiceProvider) error {
	return r.db.Save(p).Error
}

func (r *ServiceRepository) ListProviders() ([]models.ServiceProvider, error) {
	var out []models.ServiceProvider
	err := r.db.Where("available = ?", true).Find(&out).Error
	return out, err
}

func (r *ServiceRepository) CreateRequest(req *models.ServiceRequest) error {
	return r.db.Create(req).Error
}

func (r *ServiceRepository) GetRequestByID(id uint) (*models.ServiceRequest, error) {
	var sr models.ServiceRequest
	err := r.db.First(&sr, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func (r *ServiceRepository) ListRequestsByTenant(tenantID uint) ([]models.ServiceRequest, error) {
	var out []models.ServiceRequest
	err := r.db.Where("tenant_id = ?", tenantID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *ServiceRepository) ListRequestsForProvider(providerID uint) ([]models.ServiceRequest, error) {
	var out []models.ServiceRequest
	err := r.db.Where("service_provider_id = ?", providerID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *ServiceRepository) UpdateRequestStatus(id uint, status string) error {
	updates := map[string]interface{}{"status": status}
	if status == domain.ServiceRequestCompleted {
		now := time.Now()
		updates["completed_at"] = &now
	}
	return r.db.Model(&models.ServiceRequest{}).Where("id = ?", id).Updates(updates).Error
}
