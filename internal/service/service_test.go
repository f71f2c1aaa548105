package service

import (
	"testing"
	"time"

	"homehub/internal/database"
	"homehub/internal/domain"
	"homehub/internal/models"
	"homehub/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// env bundles the services under test over one in-memory database.
type env struct {
	db         *gorm.DB
	bookings   *repository.BookingRepository
	houses     *repository.HouseRepository
	payments   *repository.PaymentRepository
	notifRepo  *repository.NotificationRepository
	notif      *NotificationService
	bookingSvc *BookingService
	reconcile  *ReconcileService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// One connection keeps the in-memory database alive across the pool.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	e := &env{
		db:        db,
		bookings:  repository.NewBookingRepository(db),
		houses:    repository.NewHouseRepository(db),
		payments:  repository.NewPaymentRepository(db),
		notifRepo: repository.NewNotificationRepository(db),
	}
	e.notif = NewNotificationService(e.notifRepo)
	e.bookingSvc = NewBookingService(e.bookings, e.houses, e.payments, e.notif)
	e.reconcile = NewReconcileService(db, e.notif)
	return e
}

func (e *env) seedUser(t *testing.T, name, role string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@test.local", Role: role}
	if err := u.SetPassword("password"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if err := e.db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (e *env) seedHouse(t *testing.T, ownerID uint) *models.House {
	t.Helper()
	h := &models.House{
		Title:                "Two Bed Kilimani",
		Location:             "Kilimani, Nairobi",
		Available:            true,
		OwnerID:              ownerID,
		RentAmountCents:      4500000,
		SecurityDepositCents: 4500000,
		Bedrooms:             2,
	}
	if err := e.houses.Create(h); err != nil {
		t.Fatalf("create house: %v", err)
	}
	return h
}

func (e *env) seedBooking(t *testing.T, tenantID, houseID uint, status string) *models.Booking {
	t.Helper()
	b := &models.Booking{
		TenantID:      tenantID,
		HouseID:       houseID,
		FirstName:     "Jane",
		LastName:      "Wanjiku",
		Email:         "jane@test.local",
		Phone:         "254712345678",
		MoveInDate:    time.Now().Add(14 * 24 * time.Hour),
		Status:        status,
		PaymentStatus: domain.RentPending,
	}
	if err := e.bookings.Create(b); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return b
}

func validDraft() BookingDraft {
	return BookingDraft{
		FirstName:  "Jane",
		LastName:   "Wanjiku",
		Email:      "jane@test.local",
		Phone:      "254712345678",
		MoveInDate: time.Now().Add(14 * 24 * time.Hour),
		AgreeTerms: true,
	}
}
