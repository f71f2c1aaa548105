package service

import (
	"log"
	"time"

	"homehub/internal/domain"
	"homehub/internal/models"
	"homehub/internal/repository"
)

// BookingService owns the booking lifecycle. Every transition is a single
// conditional update, so two concurrent callers cannot both win the same
// edge; the loser sees ErrInvalidState.
type BookingService struct {
	bookings *repository.BookingRepository
	houses   *repository.HouseRepository
	payments *repository.PaymentRepository
	notif    *NotificationService
}

func NewBookingService(
	bookings *repository.BookingRepository,
	houses *repository.HouseRepository,
	payments *repository.PaymentRepository,
	notif *NotificationService,
) *BookingService {
	return &BookingService{bookings: bookings, houses: houses, payments: payments, notif: notif}
}

// BookingDraft is the tenant-submitted application for a house.
type BookingDraft struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	CurrentAddress string

	MoveInDate      time.Time
	LeaseTerm       string
	StayDuration    string
	SpecialRequests string
	OccupantsCount  int
	Pets            string

	EmergencyContactName         string
	EmergencyContactPhone        string
	EmergencyContactRelationship string

	PaymentMethod string
	AgreeTerms    bool
}

func (d *BookingDraft) validate() error {
	ve := domain.NewValidationError()
	if d.FirstName == "" {
		ve.Add("first_name", "required")
	}
	if d.LastName == "" {
		ve.Add("last_name", "required")
	}
	if d.Email == "" {
		ve.Add("email", "required")
	}
	if d.Phone == "" {
		ve.Add("phone", "required")
	}
	if d.MoveInDate.IsZero() {
		ve.Add("move_in_date", "required")
	} else {
		today := time.Now().Truncate(24 * time.Hour)
		if d.MoveInDate.Before(today) {
			ve.Add("move_in_date", "must be today or a future date")
		}
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// Submit creates a Pending booking for an available house.
func (s *BookingService) Submit(tenantID, houseID uint, draft BookingDraft) (*models.Booking, error) {
	if err := draft.validate(); err != nil {
		return nil, err
	}
	house, err := s.houses.GetByID(houseID)
	if err != nil {
		return nil, err
	}
	if house == nil {
		return nil, domain.ErrHouseNotFound
	}
	if !house.Available {
		ve := domain.NewValidationError()
		ve.Add("house_id", "house is not available")
		return nil, ve
	}
	b := &models.Booking{
		TenantID:                     tenantID,
		HouseID:                      houseID,
		FirstName:                    draft.FirstName,
		LastName:                     draft.LastName,
		Email:                        draft.Email,
		Phone:                        draft.Phone,
		CurrentAddress:               draft.CurrentAddress,
		MoveInDate:                   draft.MoveInDate,
		LeaseTerm:                    draft.LeaseTerm,
		StayDuration:                 draft.StayDuration,
		SpecialRequests:              draft.SpecialRequests,
		OccupantsCount:               draft.OccupantsCount,
		Pets:                         draft.Pets,
		EmergencyContactName:         draft.EmergencyContactName,
		EmergencyContactPhone:        draft.EmergencyContactPhone,
		EmergencyContactRelationship: draft.EmergencyContactRelationship,
		PaymentMethod:                draft.PaymentMethod,
		AgreeTerms:                   draft.AgreeTerms,
		Status:                       domain.BookingPending,
		PaymentStatus:                domain.RentPending,
	}
	if err := s.bookings.Create(b); err != nil {
		return nil, err
	}
	log.Printf("[BOOKING] submitted booking %d house %d tenant %d", b.ID, houseID, tenantID)
	_ = s.notif.NotifyBookingSubmitted(house.OwnerID, b.ID, house.Title)
	return b, nil
}

// Decide approves or rejects a Pending booking. Ownership is checked before
// state so a non-owner always gets ErrUnauthorized, whatever the status.
func (s *BookingService) Decide(bookingID, landlordID uint, decision string) (*models.Booking, error) {
	b, house, err := s.loadBookingAndHouse(bookingID)
	if err != nil {
		return nil, err
	}
	if house.OwnerID != landlordID {
		return nil, domain.ErrUnauthorized
	}
	var target string
	switch decision {
	case domain.DecisionApprove:
		target = domain.BookingApproved
	case domain.DecisionReject:
		target = domain.BookingRejected
	default:
		ve := domain.NewValidationError()
		ve.Add("decision", "must be approve or reject")
		return nil, ve
	}
	ok, err := s.bookings.TransitionStatus(bookingID, domain.BookingPending, target)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidState
	}
	log.Printf("[BOOKING] booking %d %s by landlord %d", bookingID, target, landlordID)
	_ = s.notif.NotifyBookingDecision(b.TenantID, bookingID, target)
	return s.bookings.GetByID(bookingID)
}

// Activate moves an Approved booking to Active once the deposit is paid,
// and takes the house off the market.
func (s *BookingService) Activate(bookingID, landlordID uint) (*models.Booking, error) {
	b, house, err := s.loadBookingAndHouse(bookingID)
	if err != nil {
		return nil, err
	}
	if house.OwnerID != landlordID {
		return nil, domain.ErrUnauthorized
	}
	if !b.DepositPaid {
		ve := domain.NewValidationError()
		ve.Add("deposit", "deposit not paid")
		return nil, ve
	}
	ok, err := s.bookings.TransitionStatus(bookingID, domain.BookingApproved, domain.BookingActive)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidState
	}
	if err := s.houses.SetAvailable(house.ID, false); err != nil {
		log.Printf("[BOOKING] house %d availability update failed: %v", house.ID, err)
	}
	log.Printf("[BOOKING] booking %d activated", bookingID)
	_ = s.notif.NotifyBookingDecision(b.TenantID, bookingID, domain.BookingActive)
	return s.bookings.GetByID(bookingID)
}

// Cancel soft-cancels an Approved booking. The record is never hard-deleted:
// successful payment transactions may reference it.
func (s *BookingService) Cancel(bookingID, actorID uint) (*models.Booking, error) {
	b, house, err := s.loadBookingAndHouse(bookingID)
	if err != nil {
		return nil, err
	}
	if b.TenantID != actorID && house.OwnerID != actorID {
		return nil, domain.ErrUnauthorized
	}
	ok, err := s.bookings.TransitionStatus(bookingID, domain.BookingApproved, domain.BookingCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidState
	}
	log.Printf("[BOOKING] booking %d cancelled by user %d", bookingID, actorID)
	return s.bookings.GetByID(bookingID)
}

// RequestMoveOut lets the tenant of an Active booking request move-out.
func (s *BookingService) RequestMoveOut(bookingID, tenantID uint) (*models.Booking, error) {
	b, house, err := s.loadBookingAndHouse(bookingID)
	if err != nil {
		return nil, err
	}
	if b.TenantID != tenantID {
		return nil, domain.ErrUnauthorized
	}
	ok, err := s.bookings.TransitionStatus(bookingID, domain.BookingActive, domain.BookingMoveOutRequested)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidState
	}
	log.Printf("[BOOKING] booking %d move-out requested", bookingID)
	_ = s.notif.NotifyMoveOutRequested(house.OwnerID, bookingID, house.Title)
	return s.bookings.GetByID(bookingID)
}

// GetFor returns a booking to its tenant, the house owner, or an admin.
func (s *BookingService) GetFor(bookingID, userID uint, role string) (*models.Booking, error) {
	b, house, err := s.loadBookingAndHouse(bookingID)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleAdmin || b.TenantID == userID || house.OwnerID == userID {
		return b, nil
	}
	return nil, domain.ErrUnauthorized
}

func (s *BookingService) Get(bookingID uint) (*models.Booking, error) {
	b, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (s *BookingService) ListForTenant(tenantID uint) ([]models.Booking, error) {
	return s.bookings.ListByTenant(tenantID)
}

func (s *BookingService) ListForLandlord(landlordID uint) ([]models.Booking, error) {
	return s.bookings.ListForLandlord(landlordID)
}

func (s *BookingService) loadBookingAndHouse(bookingID uint) (*models.Booking, *models.House, error) {
	b, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, nil, err
	}
	if b == nil {
		return nil, nil, domain.ErrNotFound
	}
	house, err := s.houses.GetByID(b.HouseID)
	if err != nil {
		return nil, nil, err
	}
	if house == nil {
		return nil, nil, domain.ErrHouseNotFound
	}
	return b, house, nil
}
