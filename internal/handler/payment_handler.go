package handler

import (
	"net/http"

	"homehub/internal/middleware"
	"homehub/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	svc *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

type initiateRequest struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	AmountKES int64  `json:"amount_kes" binding:"required,min=1"`
	Purpose   string `json:"purpose" binding:"required,oneof=DEPOSIT RENT"`
}

// Initiate starts an STK push for a booking's deposit or rent. Tenant only.
// The returned checkout_request_id is what the client polls on.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req initiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.svc.Initiate(c.Request.Context(), req.BookingID, middleware.GetUserID(c), req.Phone, req.AmountKES*100, req.Purpose)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"transaction_id":      res.TransactionID,
		"checkout_request_id": res.CheckoutRequestID,
		"message":             "Check your phone to complete the M-Pesa payment.",
	})
}

// Status lets the client poll a transaction it initiated.
func (h *PaymentHandler) Status(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}
	txn, err := h.svc.GetForTenant(id, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"transaction_id": txn.ID,
		"status":         txn.Status,
		"mpesa_receipt":  txn.MpesaReceipt,
		"result_desc":    txn.ResultDesc,
	})
}

func (h *PaymentHandler) ListMine(c *gin.Context) {
	payments, err := h.svc.ListForTenant(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

func (h *PaymentHandler) ListForLandlord(c *gin.Context) {
	payments, err := h.svc.ListForLandlord(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
