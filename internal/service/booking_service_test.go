package service

import (
	"errors"
	"testing"

	"homehub/internal/domain"
)

func TestSubmitBooking(t *testing.T) {
	e := newEnv(t)
	landlord := e.seedUser(t, "landlord", domain.RoleLandlord)
	tenant := e.seedUser(t, "tenant", domain.RoleTenant)
	house := e.seedHouse(t, landlord.ID)

	b, err := e.bookingSvc.Submit(tenant.ID, house.ID, validDraft())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if b.Status != domain.BookingPending {
		t.Errorf("new booking must be Pending, got %s", b.Status)
	}
	if b.DepositPaid {
		t.Error("new booking must not have deposit paid")
	}

	// Landlord gets a notification.
	notifs, err := e.notifRepo.ListByUser(landlord.ID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(notifs) != 1 {
		t.Errorf("expected 1 landlord notification, got %d", len(notifs))
	}
}

func TestSubmitBookingValidation(t *testing.T) {
	e := newEnv(t)
	landlord := e.seedUser(t, "landlord", domain.RoleLandlord)
	tenant := e.seedUser(t, "tenant", domain.RoleTenant)
	house := e.seedHouse(t, landlord.ID)

	draft := validDraft()
	draft.Email = ""
	draft.Phone = ""
	_, err := e.bookingSvc.Submit(tenant.ID, house.ID, draft)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, has := ve.Fields["email"]; !has {
		t.Error("missing email field error")
	}
	if _, has := ve.Fields["phone"]; !has {
		t.Error("missing phone field error")
	}
}

func TestSubmitBookingUnknownHouse(t *testing.T) {
	e := newEnv(t)
	tenant := e.seedUser(t, "tenant", domain.RoleTenant)

	_, err := e.bookingSvc.Submit(tenant.ID, 9999, validDraft())
	if !errors.Is(err, domain.ErrHouseNotFound) {
		t.Errorf("expected ErrHouseNotFound, got %v", err)
	}
}

func TestSubmitBookingUnavailableHouse(t *testing.T) {
	e := newEnv(t)
	landlord := e.seedUser(t, "landlord", domain.RoleLandlord)
	tenant := e.seedUser(t, "tenant", domain.RoleTenant)
	house := e.seedHouse(t, landlord.ID)
	if err := e.houses.SetAvailable(house.ID, false); err != nil {
		t.Fatalf("set available: %v", err)
	}

	_, err := e.bookingSvc.Submit(tenant.ID, house.ID, validDraft())
	if !domain.IsValidation(err) {
		t.Errorf("expected validation error for unavailable house, got %v", err)
	}
}

func TestDecideApprove(t *testing.T) {
	e := newEnv(t)
	landlord := e.seedUser(t, "landlord", domain.RoleLandlord)
	tenant := e.seedUser(t, "tenant", domain.RoleTenant)
	house := e.seedHouse(t, landlord.ID)
	b := e.seedBooking(t, tenant.ID, house.ID, domain.BookingPending)

	got, err := e.bookingSvc.Decide(b.ID, landlord.ID, domain.DecisionApprove)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if got.Status != domain.BookingApproved {
		t.Errorf("expected Approved, got %s", got.Status)
	}
}

func TestDecideReject(t *testing.T) {
	e := newEnv(t)
	landlord := e.seedUser(t, "landlord", domain.RoleLandlord)
	tenant := e.seedUser(t, "tenant", domain.RoleTenant)
	house := e.seedHouse(t, landlord.ID)
	b := e.seedBooking(t, tenant.ID, house.ID, domain.BookingPending)

	got, err := e.bookingSvc.Decide(b.ID, landlord.ID, domain.DecisionReject)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if got.Status != domain.BookingRejected {
		t.Errorf("expected Rejected, got %s", got.Status)
	}
}

// The second decision on the same booking loses: the conditional update only
// fires while the row is still Pending.
func TestDecideTwice(t *testing.T) {
	e := newEnv(t)
	landlord := e.seedUser(t, "landlord", domain.RoleLandlord)
	tenant := e.seedUser(t, "tenant", domain.RoleTenant)
	house := e.seedHouse(t, landlord.ID)
	b := e.seedBooking(t, tenant.ID, house.ID, domain.BookingPending)

	if _, err := e.bookingSvc.Decide(b.ID, landlord.ID, domain.DecisionApprove); err != nil {
		t.Fatalf("first decide: %v", err)
	}
	_, err := e.bookingSvc.Decide(b.ID, landlord.ID, domain.DecisionReject)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState on second decision, got %v", err)
	}
	got, err := e.bookings.GetByID(b.ID)
	if err != nil {
		t.Fatalf("get booking: %v", err)
	}
	if got.Status != domain.BookingApproved {
		t.Errorf("first decision must stand, got %s", got.Status)
	}
}

// A non-owner gets ErrUnauthorized regardless of the booking's state.
func TestDecideNotOwner(t *testing.T) {
	e := newEnv(t)
	landlord := e.seedUser(t, "landlord", domain.RoleLandlord)
	other := e.seedUser(t, "other", domain.RoleLandlord)
	tenant := e.seedUser(t, "tenant", domain.RoleTenant)
	house := e.seedHouse(t, landlord.ID)

	for _, status := range []string{domain.BookingPending, domain.BookingApproved} {
		b := e.seedBooking(t, tenant.ID, house.ID, status)
		_, err := e.bookingSvc.Decide(b.ID, other.ID, domain.DecisionApprove)
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("status %s: expected ErrUnauthorized, got %v", status, err)
		}
	}
}

func TestActivateRequiresDeposit(t *testing.T) {
	e := newEnv(t)
	landlord := e.seedUser(t, "landlord", domain.RoleLandlord)
	tenant := e.seedUser(t, "tenant", domain.RoleTenant)
	house := e.seedHouse(t, landlord.ID)
	b := e.seedBooking(t, tenant.ID, house.ID, domain.BookingApproved)

	_, err := e.bookingSvc.Activate(b.ID, landlord.ID)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error without deposit, got %v", err)
	}

	if err := e.db.Model(b).Update("deposit_paid", true).Error; err != nil {
		t.Fatalf("mark deposit paid: %v", err)
	}
	got, err := e.bookingSvc.Activate(b.ID, landlord.ID)
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if got.Status != domain.BookingActive {
		t.Errorf("expected Active, got %s", got.Status)
	}

	h, err := e.houses.GetByID(house.ID)
	if err != nil {
		t.Fatalf("get house: %v", err)
	}
	if h.Available {
		t.Error("activation must take the house off the market")
	}
}

func TestCancelApprovedBooking(t *testing.T) {
	e := newEnv(t)
	landlord := e.seedUser(t, "landlord", domain.RoleLandlord)
	tenant := e.seedUser(t, "tenant", domain.RoleTenant)
	house := e.seedHouse(t, landlord.ID)
	b := e.seedBooking(t, tenant.ID, house.ID, domain.BookingApproved)

	got, err := e.bookingSvc.Cancel(b.ID, tenant.ID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if got.Status != domain.BookingCancelled {
		t.Errorf("expected Cancelled, got %s", got.Status)
	}
}

func TestCancelIllegalEdges(t *testing.T) {
	e := newEnv(t)
	landlord := e.seedUser(t, "landlord", domain.RoleLandlord)
	tenant := e.seedUser(t, "tenant", domain.RoleTenant)
	house := e.seedHouse(t, landlord.ID)

	for _, status := range []string{domain.BookingPending, domain.BookingActive, domain.BookingRejected} {
		b := e.seedBooking(t, tenant.ID, house.ID, status)
		_, err := e.bookingSvc.Cancel(b.ID, tenant.ID)
		if !errors.Is(err, domain.ErrInvalidState) {
			t.Errorf("status %s: expected ErrInvalidState, got %v", status, err)
		}
	}

	// A stranger cannot cancel at all.
	stranger := e.seedUser(t, "stranger", domain.RoleTenant)
	b := e.seedBooking(t, tenant.ID, house.ID, domain.BookingApproved)
	_, err := e.bookingSvc.Cancel(b.ID, stranger.ID)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRequestMoveOut(t *testing.T) {
	e := newEnv(t)
	landlord := e.seedUser(t, "landlord", domain.RoleLandlord)
	tenant := e.seedUser(t, "tenant", domain.RoleTenant)
	house := e.seedHouse(t, landlord.ID)
	b := e.seedBooking(t, tenant.ID, house.ID, domain.BookingActive)

	got, err := e.bookingSvc.RequestMoveOut(b.ID, tenant.ID)
	if err != nil {
		t.Fatalf("RequestMoveOut: %v", err)
	}
	if got.Status != domain.BookingMoveOutRequested {
		t.Errorf("expected MoveOutRequested, got %s", got.Status)
	}

	// Only from Active.
	b2 := e.seedBooking(t, tenant.ID, house.ID, domain.BookingApproved)
	_, err = e.bookingSvc.RequestMoveOut(b2.ID, tenant.ID)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}

	// Only by the tenant.
	b3 := e.seedBooking(t, tenant.ID, house.ID, domain.BookingActive)
	_, err = e.bookingSvc.RequestMoveOut(b3.ID, landlord.ID)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGetForAuthorization(t *testing.T) {
	e := newEnv(t)
	landlord := e.seedUser(t, "landlord", domain.RoleLandlord)
	tenant := e.seedUser(t, "tenant", domain.RoleTenant)
	admin := e.seedUser(t, "boss", domain.RoleAdmin)
	stranger := e.seedUser(t, "stranger", domain.RoleTenant)
	house := e.seedHouse(t, landlord.ID)
	b := e.seedBooking(t, tenant.ID, house.ID, domain.BookingPending)

	for _, tc := range []struct {
		name   string
		userID uint
		role   string
		wantOK bool
	}{
		{"tenant", tenant.ID, domain.RoleTenant, true},
		{"owner", landlord.ID, domain.RoleLandlord, true},
		{"admin", admin.ID, domain.RoleAdmin, true},
		{"stranger", stranger.ID, domain.RoleTenant, false},
	} {
		_, err := e.bookingSvc.GetFor(b.ID, tc.userID, tc.role)
		if tc.wantOK && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.wantOK && !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("%s: expected ErrUnauthorized, got %v", tc.name, err)
		}
	}
}
