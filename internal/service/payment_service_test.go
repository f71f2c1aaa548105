package service

import (
	"context"
	"errors"
	"testing"

	"homehub/internal/domain"
	"homehub/pkg/payment"
)

// fakeProvider records the request and returns a canned response or error.
type fakeProvider struct {
	lastReq payment.STKPushRequest
	resp    *payment.STKPushResponse
	err     error
}

func (f *fakeProvider) InitiateSTKPush(ctx context.Context, req payment.STKPushRequest) (*payment.STKPushResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func newPaymentEnv(t *testing.T, provider payment.Provider) (*env, *PaymentService) {
	t.Helper()
	e := newEnv(t)
	svc := NewPaymentService(e.payments, e.bookings, provider, "https://homehub.example.com")
	return e, svc
}

func TestInitiateDeposit(t *testing.T) {
	fp := &fakeProvider{resp: &payment.STKPushResponse{
		MerchantRequestID: "mr-1",
		CheckoutRequestID: "ws_CO_init_1",
		ResponseCode:      "0",
		CustomerMessage:   "Success. Request accepted for processing",
	}}
	e, svc := newPaymentEnv(t, fp)
	landlord := e.seedUser(t, "landlord", domain.RoleLandlord)
	tenant := e.seedUser(t, "tenant", domain.RoleTenant)
	house := e.seedHouse(t, landlord.ID)
	b := e.seedBooking(t, tenant.ID, house.ID, domain.BookingApproved)

	res, err := svc.Initiate(context.Background(), b.ID, tenant.ID, "254712345678", 4500000, domain.PurposeDeposit)
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if res.CheckoutRequestID != "ws_CO_init_1" {
		t.Errorf("wrong CheckoutRequestID: %s", res.CheckoutRequestID)
	}

	// Gateway sees whole currency units, the row keeps cents.
	if fp.lastReq.Amount != 45000 {
		t.Errorf("gateway amount must be whole units, got %d", fp.lastReq.Amount)
	}
	txn, err := e.payments.GetByID(res.TransactionID)
	if err != nil {
		t.Fatalf("get transaction: %v", err)
	}
	if txn.AmountCents != 4500000 {
		t.Errorf("stored amount must be cents, got %d", txn.AmountCents)
	}
	if txn.Status != domain.PaymentPending {
		t.Errorf("initiated transaction must be Pending, got %s", txn.Status)
	}
	if txn.CheckoutRequestID == nil || *txn.CheckoutRequestID != "ws_CO_init_1" {
		t.Errorf("correlation id not stored: %v", txn.CheckoutRequestID)
	}
	if fp.lastReq.CallbackURL != "https://homehub.example.com/api/v1/webhooks/mpesa" {
		t.Errorf("wrong callback URL: %s", fp.lastReq.CallbackURL)
	}
}

// Gateway failure leaves the Pending row without a correlation id and
// surfaces ErrGatewayUnavailable.
func TestInitiateGatewayDown(t *testing.T) {
	fp := &fakeProvider{err: payment.ErrUnavailable}
	e, svc := newPaymentEnv(t, fp)
	landlord := e.seedUser(t, "landlord", domain.RoleLandlord)
	tenant := e.seedUser(t, "tenant", domain.RoleTenant)
	house := e.seedHouse(t, landlord.ID)
	b := e.seedBooking(t, tenant.ID, house.ID, domain.BookingApproved)

	_, err := svc.Initiate(context.Background(), b.ID, tenant.ID, "254712345678", 4500000, domain.PurposeDeposit)
	if !errors.Is(err, domain.ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}

	txns, err := e.payments.ListByBooking(b.ID)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("expected the Pending row to remain, got %d rows", len(txns))
	}
	if txns[0].Status != domain.PaymentPending {
		t.Errorf("expected Pending, got %s", txns[0].Status)
	}
	if txns[0].CheckoutRequestID != nil {
		t.Errorf("no correlation id should be set, got %v", *txns[0].CheckoutRequestID)
	}
}

func TestInitiateValidation(t *testing.T) {
	e, svc := newPaymentEnv(t, &fakeProvider{})
	landlord := e.seedUser(t, "landlord", domain.RoleLandlord)
	tenant := e.seedUser(t, "tenant", domain.RoleTenant)
	house := e.seedHouse(t, landlord.ID)
	b := e.seedBooking(t, tenant.ID, house.ID, domain.BookingApproved)

	for _, tc := range []struct {
		name    string
		phone   string
		amount  int64
		purpose string
	}{
		{"no phone", "", 100, domain.PurposeDeposit},
		{"zero amount", "254712345678", 0, domain.PurposeDeposit},
		{"bad purpose", "254712345678", 100, "TIP"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Initiate(context.Background(), b.ID, tenant.ID, tc.phone, tc.amount, tc.purpose)
			if !domain.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestInitiateWrongTenant(t *testing.T) {
	e, svc := newPaymentEnv(t, &fakeProvider{})
	landlord := e.seedUser(t, "landlord", domain.RoleLandlord)
	tenant := e.seedUser(t, "tenant", domain.RoleTenant)
	other := e.seedUser(t, "other", domain.RoleTenant)
	house := e.seedHouse(t, landlord.ID)
	b := e.seedBooking(t, tenant.ID, house.ID, domain.BookingApproved)

	_, err := svc.Initiate(context.Background(), b.ID, other.ID, "254712345678", 100, domain.PurposeDeposit)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGetForTenant(t *testing.T) {
	fp := &fakeProvider{resp: &payment.STKPushResponse{CheckoutRequestID: "ws_CO_g_1", ResponseCode: "0"}}
	e, svc := newPaymentEnv(t, fp)
	landlord := e.seedUser(t, "landlord", domain.RoleLandlord)
	tenant := e.seedUser(t, "tenant", domain.RoleTenant)
	other := e.seedUser(t, "other", domain.RoleTenant)
	house := e.seedHouse(t, landlord.ID)
	b := e.seedBooking(t, tenant.ID, house.ID, domain.BookingApproved)

	res, err := svc.Initiate(context.Background(), b.ID, tenant.ID, "254712345678", 100, domain.PurposeDeposit)
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if _, err := svc.GetForTenant(res.TransactionID, tenant.ID); err != nil {
		t.Errorf("owner poll failed: %v", err)
	}
	if _, err := svc.GetForTenant(res.TransactionID, other.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for another tenant, got %v", err)
	}
}
