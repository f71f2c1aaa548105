package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"homehub/internal/domain"
	"homehub/internal/middleware"
	"homehub/internal/service"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	svc *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

type bookingRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"required"`
	CurrentAddress string `json:"current_address"`

	MoveInDate      string `json:"move_in_date" binding:"required"` // YYYY-MM-DD
	LeaseTerm       string `json:"lease_term"`
	StayDuration    string `json:"stay_duration"`
	SpecialRequests string `json:"special_requests"`
	OccupantsCount  int    `json:"occupants_count"`
	Pets            string `json:"pets"`

	EmergencyContactName         string `json:"emergency_contact_name"`
	EmergencyContactPhone        string `json:"emergency_contact_phone"`
	EmergencyContactRelationship string `json:"emergency_contact_relationship"`

	PaymentMethod string `json:"payment_method"`
	AgreeTerms    bool   `json:"agree_terms"`
}

// Create submits a booking for a house. Tenant only.
func (h *BookingHandler) Create(c *gin.Context) {
	tenantID := middleware.GetUserID(c)
	houseID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	moveIn, err := time.Parse("2006-01-02", req.MoveInDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "move_in_date must be YYYY-MM-DD"})
		return
	}
	booking, err := h.svc.Submit(tenantID, houseID, service.BookingDraft{
		FirstName:                    req.FirstName,
		LastName:                     req.LastName,
		Email:                        req.Email,
		Phone:                        req.Phone,
		CurrentAddress:               req.CurrentAddress,
		MoveInDate:                   moveIn,
		LeaseTerm:                    req.LeaseTerm,
		StayDuration:                 req.StayDuration,
		SpecialRequests:              req.SpecialRequests,
		OccupantsCount:               req.OccupantsCount,
		Pets:                         req.Pets,
		EmergencyContactName:         req.EmergencyContactName,
		EmergencyContactPhone:        req.EmergencyContactPhone,
		EmergencyContactRelationship: req.EmergencyContactRelationship,
		PaymentMethod:                req.PaymentMethod,
		AgreeTerms:                   req.AgreeTerms,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// Get returns one booking to its tenant, the house owner, or an admin.
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}
	booking, err := h.svc.GetFor(id, middleware.GetUserID(c), middleware.GetRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	bookings, err := h.svc.ListForTenant(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) ListForLandlord(c *gin.Context) {
	bookings, err := h.svc.ListForLandlord(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) Approve(c *gin.Context) {
	h.decide(c, domain.DecisionApprove)
}

func (h *BookingHandler) Reject(c *gin.Context) {
	h.decide(c, domain.DecisionReject)
}

func (h *BookingHandler) decide(c *gin.Context, decision string) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}
	booking, err := h.svc.Decide(id, middleware.GetUserID(c), decision)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) Activate(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}
	booking, err := h.svc.Activate(id, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}
	booking, err := h.svc.Cancel(id, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) RequestMoveOut(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}
	booking, err := h.svc.RequestMoveOut(id, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func parseQueryID(c *gin.Context, raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return 0, fmt.Errorf("invalid user_id: %q", raw)
	}
	return uint(id), nil
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, fmt.Errorf("invalid %s param: %q", name, raw)
	}
	return uint(id), nil
}
