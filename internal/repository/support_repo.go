package repository

import (
	"errors"

	"homehub/internal/models"

	"gorm.io/gorm"
)

type SupportRepository struct {
	db *gorm.DB
}

func NewSupportRepository(db *gorm.DB) *SupportRepository {
	return &SupportRepository{db: db}
}

func (r *SupportRepository) CreateTicket(t *models.SupportTicket) error {
	return r.db.Create(t).Error
}

func (r *SupportRepository) GetTicketByID(id uint) (*models.SupportTicket, error) {
	var t models.SupportTicket
	err := r.db.First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *SupportRepository) ListTicketsByUser(userID uint) ([]models.SupportTicket, error) {
	var out []models.SupportTicket
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *SupportRepository) ListOpenTickets() ([]models.SupportTicket, error) {
	var out []models.SupportTicket
	err := r.db.Where("status = ?", "open").Order("created_at ASC").Find(&out).Error
	return out, err
}

func (r *SupportRepository) UpdateTicketStatus(id uint, status string) error {
	return r.db.Model(&models.SupportTicket{}).Where("id = ?", id).Update("status", status).Error
}

func (r *SupportRepository) CreateMessage(m *models.SupportMessage) error {
	return r.db.Create(m).Error
}

// ListConversation returns the chat history for one user, oldest first.
func (r *SupportRepository) ListConversation(userID uint) ([]models.SupportMessage, error) {
	var out []models.SupportMessage
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&out).Error
	return out, err
}

func (r *SupportRepository) MarkConversationRead(userID uint) error {
	return r.db.Model(&models.SupportMessage{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
