package service

import (
	"errors"
	"log"
	"strconv"

	"homehub/internal/domain"
	"homehub/internal/models"
	"homehub/pkg/payment"

	"gorm.io/gorm"
)

// ReconcileService applies an async gateway callback to the matching
// transaction and its booking exactly once. Matching is strictly by the
// CheckoutRequestID issued at initiation; there is no latest-pending
// fallback, so concurrent initiations for the same booking can never be
// conflated.
type ReconcileService struct {
	db    *gorm.DB
	notif *NotificationService
}

func NewReconcileService(db *gorm.DB, notif *NotificationService) *ReconcileService {
	return &ReconcileService{db: db, notif: notif}
}

// HandleCallback parses and applies a raw webhook body. All failures are
// logged and swallowed: the gateway cannot act on an error response and
// retriggering callback storms helps nobody.
func (s *ReconcileService) HandleCallback(raw []byte) {
	res, err := payment.ParseCallback(raw)
	if err != nil {
		log.Printf("[MPESA callback] %v", err)
		return
	}
	if err := s.Apply(res); err != nil {
		log.Printf("[MPESA callback] apply failed checkout_request_id=%s: %v", res.CheckoutRequestID, err)
	}
}

// Apply performs the reconciliation in one database transaction spanning the
// payment transaction and its booking. Replays are detected two ways: the
// conditional update only fires while the transaction is still Pending, and
// the receipt column's unique index rejects a second Success for the same
// receipt.
func (s *ReconcileService) Apply(res *payment.CallbackResult) error {
	var notifyTenant uint
	var notifyBooking uint
	var notifyReceipt string
	var notifyFailDesc string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txn models.PaymentTransaction
		err := tx.Where("checkout_request_id = ?", res.CheckoutRequestID).First(&txn).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[MPESA callback] reconciliation miss: no transaction for checkout_request_id=%s", res.CheckoutRequestID)
			return nil
		}
		if err != nil {
			return err
		}
		if txn.Status != domain.PaymentPending {
			log.Printf("[MPESA callback] replay ignored: transaction %d already %s", txn.ID, txn.Status)
			return nil
		}

		if !res.Success() {
			r := tx.Model(&models.PaymentTransaction{}).
				Where("id = ? AND status = ?", txn.ID, domain.PaymentPending).
				Updates(map[string]interface{}{
					"status":      domain.PaymentFailed,
					"result_code": strconv.Itoa(res.ResultCode),
					"result_desc": res.ResultDesc,
				})
			if r.Error != nil {
				return r.Error
			}
			if r.RowsAffected == 0 {
				log.Printf("[MPESA callback] replay ignored: transaction %d resolved concurrently", txn.ID)
				return nil
			}
			log.Printf("[MPESA callback] transaction %d failed: %d %s", txn.ID, res.ResultCode, res.ResultDesc)
			var b models.Booking
			if tx.First(&b, txn.BookingID).Error == nil {
				notifyTenant = b.TenantID
				notifyBooking = b.ID
				notifyFailDesc = res.ResultDesc
			}
			return nil
		}

		if res.AmountCents != 0 && res.AmountCents != txn.AmountCents {
			log.Printf("[MPESA callback] amount mismatch on transaction %d: got %d want %d", txn.ID, res.AmountCents, txn.AmountCents)
		}
		updates := map[string]interface{}{
			"status":        domain.PaymentSuccess,
			"mpesa_receipt": res.Receipt,
			"result_code":   strconv.Itoa(res.ResultCode),
			"result_desc":   res.ResultDesc,
		}
		if res.PhoneNumber != "" {
			updates["phone_number"] = res.PhoneNumber
		}
		r := tx.Model(&models.PaymentTransaction{}).
			Where("id = ? AND status = ?", txn.ID, domain.PaymentPending).
			Updates(updates)
		if r.Error != nil {
			// Unique receipt violation lands here on a replayed delivery
			// racing the first; rolling back leaves everything untouched.
			return r.Error
		}
		if r.RowsAffected == 0 {
			log.Printf("[MPESA callback] replay ignored: transaction %d resolved concurrently", txn.ID)
			return nil
		}

		bookingField := "payment_status"
		var bookingValue interface{} = domain.RentPaid
		if txn.Purpose == domain.PurposeDeposit {
			bookingField = "deposit_paid"
			bookingValue = true
		}
		if err := tx.Model(&models.Booking{}).
			Where("id = ?", txn.BookingID).
			Update(bookingField, bookingValue).Error; err != nil {
			return err
		}
		log.Printf("[MPESA callback] transaction %d Success receipt=%s booking=%d purpose=%s", txn.ID, res.Receipt, txn.BookingID, txn.Purpose)

		var b models.Booking
		if tx.First(&b, txn.BookingID).Error == nil {
			notifyTenant = b.TenantID
			notifyBooking = b.ID
			notifyReceipt = res.Receipt
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Notifications go out after the commit so a rollback never leaves a
	// phantom "payment received".
	if notifyTenant != 0 {
		if notifyReceipt != "" {
			_ = s.notif.NotifyPaymentReceived(notifyTenant, notifyBooking, res.AmountCents, notifyReceipt)
		} else {
			_ = s.notif.NotifyPaymentFailed(notifyTenant, notifyBooking, notifyFailDesc)
		}
	}
	return nil
}
