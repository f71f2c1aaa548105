package service

import (
	"fmt"
	"log"

	"homehub/internal/models"
	"homehub/internal/repository"
)

// NotificationService persists in-app notifications. Delivery beyond the
// notification feed (push, email) is out of scope.
type NotificationService struct {
	repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Notify(userID uint, message string) error {
	n := &models.Notification{UserID: userID, Message: message}
	if err := s.repo.Create(n); err != nil {
		log.Printf("[NOTIFY] create failed for user %d: %v", userID, err)
		return err
	}
	return nil
}

func (s *NotificationService) NotifyBookingSubmitted(landlordID uint, bookingID uint, houseTitle string) error {
	return s.Notify(landlordID, fmt.Sprintf("New booking request #%d for %s", bookingID, houseTitle))
}

func (s *NotificationService) NotifyBookingDecision(tenantID uint, bookingID uint, status string) error {
	return s.Notify(tenantID, fmt.Sprintf("Your booking #%d is now %s", bookingID, status))
}

func (s *NotificationService) NotifyPaymentReceived(userID uint, bookingID uint, amountCents int64, receipt string) error {
	return s.Notify(userID, fmt.Sprintf("Payment of KES %d.%02d received for booking #%d (receipt %s)", amountCents/100, amountCents%100, bookingID, receipt))
}

func (s *NotificationService) NotifyMoveOutRequested(landlordID uint, bookingID uint, houseTitle string) error {
	return s.Notify(landlordID, fmt.Sprintf("Move-out requested on booking #%d for %s", bookingID, houseTitle))
}

func (s *NotificationService) NotifyPaymentFailed(userID uint, bookingID uint, reason string) error {
	return s.Notify(userID, fmt.Sprintf("Payment for booking #%d failed: %s", bookingID, reason))
}
