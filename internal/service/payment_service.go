package service

import (
	"context"
	"fmt"
	"log"

	"homehub/internal/domain"
	"homehub/internal/models"
	"homehub/internal/repository"
	"homehub/pkg/payment"

	"github.com/google/uuid"
)

// PaymentService initiates STK push payments for bookings. The pending
// transaction row is written before the gateway call: the synchronous
// response only carries the checkout reference, the async callback decides
// the outcome.
type PaymentService struct {
	payments    *repository.PaymentRepository
	bookings    *repository.BookingRepository
	provider    payment.Provider
	callbackURL string
}

func NewPaymentService(
	payments *repository.PaymentRepository,
	bookings *repository.BookingRepository,
	provider payment.Provider,
	callbackBaseURL string,
) *PaymentService {
	callbackURL := ""
	if callbackBaseURL != "" {
		callbackURL = callbackBaseURL + "/api/v1/webhooks/mpesa"
	}
	return &PaymentService{payments: payments, bookings: bookings, provider: provider, callbackURL: callbackURL}
}

// InitiateResult is returned to the caller for client-side polling.
type InitiateResult struct {
	TransactionID     uint   `json:"transaction_id"`
	CheckoutRequestID string `json:"checkout_request_id"`
	CustomerMessage   string `json:"customer_message,omitempty"`
}

// Initiate records a Pending transaction and asks the gateway to push the
// payment prompt. Gateway failure leaves the Pending row in place by design
// and surfaces ErrGatewayUnavailable; retries create additional rows.
func (s *PaymentService) Initiate(ctx context.Context, bookingID, tenantID uint, phone string, amountCents int64, purpose string) (*InitiateResult, error) {
	ve := domain.NewValidationError()
	if phone == "" {
		ve.Add("phone", "required")
	}
	if amountCents <= 0 {
		ve.Add("amount", "must be positive")
	}
	if purpose != domain.PurposeDeposit && purpose != domain.PurposeRent {
		ve.Add("purpose", "must be DEPOSIT or RENT")
	}
	if ve.HasErrors() {
		return nil, ve
	}
	b, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if b.TenantID != tenantID {
		return nil, domain.ErrUnauthorized
	}

	accountRef := fmt.Sprintf("HH-%d-%s", bookingID, uuid.New().String()[:8])
	txn := &models.PaymentTransaction{
		BookingID:        bookingID,
		HouseID:          b.HouseID,
		PhoneNumber:      phone,
		AmountCents:      amountCents,
		Purpose:          purpose,
		AccountReference: accountRef,
		Status:           domain.PaymentPending,
	}
	if err := s.payments.Create(txn); err != nil {
		return nil, err
	}
	log.Printf("[MPESA] initiate booking=%d txn=%d ref=%s amount_cents=%d purpose=%s", bookingID, txn.ID, accountRef, amountCents, purpose)

	resp, err := s.provider.InitiateSTKPush(ctx, payment.STKPushRequest{
		Amount:           amountCents / 100,
		PhoneNumber:      phone,
		AccountReference: accountRef,
		Description:      purposeDescription(purpose),
		CallbackURL:      s.callbackURL,
	})
	if err != nil {
		// Pending row stays: the callback, if it ever arrives, is authoritative.
		log.Printf("[MPESA] initiate failed txn=%d: %v", txn.ID, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	if err := s.payments.SetCheckoutRequestID(txn.ID, resp.CheckoutRequestID, resp.MerchantRequestID); err != nil {
		return nil, err
	}
	log.Printf("[MPESA] STK sent txn=%d checkout_request_id=%s", txn.ID, resp.CheckoutRequestID)
	return &InitiateResult{
		TransactionID:     txn.ID,
		CheckoutRequestID: resp.CheckoutRequestID,
		CustomerMessage:   resp.CustomerMessage,
	}, nil
}

func (s *PaymentService) Get(id uint) (*models.PaymentTransaction, error) {
	p, err := s.payments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// GetForTenant returns a transaction only to the tenant whose booking it
// pays for.
func (s *PaymentService) GetForTenant(id, tenantID uint) (*models.PaymentTransaction, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	b, err := s.bookings.GetByID(p.BookingID)
	if err != nil {
		return nil, err
	}
	if b == nil || b.TenantID != tenantID {
		return nil, domain.ErrUnauthorized
	}
	return p, nil
}

func (s *PaymentService) ListForTenant(tenantID uint) ([]models.PaymentTransaction, error) {
	return s.payments.ListByTenant(tenantID)
}

func (s *PaymentService) ListForLandlord(landlordID uint) ([]models.PaymentTransaction, error) {
	return s.payments.ListForLandlord(landlordID)
}

func purposeDescription(purpose string) string {
	if purpose == domain.PurposeDeposit {
		return "Deposit Payment"
	}
	return "Rent Payment"
}
