package handler

import (
	"fmt"
	"net/http"
	"time"

	"homehub/internal/domain"
	"homehub/internal/middleware"
	"homehub/internal/models"
	"homehub/internal/repository"
	"homehub/internal/service"

	"github.com/gin-gonic/gin"
)

// ServiceHandler covers the local services marketplace: provider profiles
// and tenant service requests (cleaning, plumbing and the like).
type ServiceHandler struct {
	repo          *repository.ServiceRepository
	notifications *service.NotificationService
}

func NewServiceHandler(repo *repository.ServiceRepository, notifications *service.NotificationService) *ServiceHandler {
	return &ServiceHandler{repo: repo, notifications: notifications}
}

func (h *ServiceHandler) ListProviders(c *gin.Context) {
	providers, err := h.repo.ListProviders()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

type providerRequest struct {
	Name        string `json:"name" binding:"required"`
	Service     string `json:"service"`
	ServiceType string `json:"service_type"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// UpsertProfile creates or updates the caller's provider profile. One
// profile per user.
func (h *ServiceHandler) UpsertProfile(c *gin.Context) {
	var req providerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.GetUserID(c)
	existing, err := h.repo.GetProviderByUserID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	p := existing
	if p == nil {
		p = &models.ServiceProvider{UserID: userID, Available: true}
	}
	p.Name = req.Name
	p.Service = req.Service
	p.ServiceType = req.ServiceType
	p.Phone = req.Phone
	p.Description = req.Description
	if req.Location != "" {
		p.Location = req.Location
	}
	if existing == nil {
		err = h.repo.CreateProvider(p)
	} else {
		err = h.repo.UpdateProvider(p)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type serviceRequestBody struct {
	ProviderID  uint   `json:"provider_id" binding:"required"`
	Description string `json:"description" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
}

// CreateRequest books a provider for a date. Tenant only.
func (h *ServiceHandler) CreateRequest(c *gin.Context) {
	var req serviceRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	provider, err := h.repo.GetProviderByID(req.ProviderID)
	if err != nil {
		respondError(c, err)
		return
	}
	if provider == nil {
		respondError(c, domain.ErrNotFound)
		return
	}
	sr := &models.ServiceRequest{
		TenantID:          middleware.GetUserID(c),
		ServiceProviderID: provider.ID,
		Description:       req.Description,
		Status:            domain.ServiceRequestPending,
		Date:              date,
	}
	if err := h.repo.CreateRequest(sr); err != nil {
		respondError(c, err)
		return
	}
	h.notifications.Notify(provider.UserID, fmt.Sprintf("New service request #%d: %s", sr.ID, sr.Description))
	c.JSON(http.StatusCreated, sr)
}

func (h *ServiceHandler) ListMyRequests(c *gin.Context) {
	requests, err := h.repo.ListRequestsByTenant(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// ListAssignedRequests returns the requests addressed to the caller's
// provider profile.
func (h *ServiceHandler) ListAssignedRequests(c *gin.Context) {
	provider, err := h.repo.GetProviderByUserID(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if provider == nil {
		respondError(c, domain.ErrNotFound)
		return
	}
	requests, err := h.repo.ListRequestsForProvider(provider.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// UpdateRequestStatus lets the assigned provider accept or complete a request.
func (h *ServiceHandler) UpdateRequestStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Status {
	case domain.ServiceRequestAccepted, domain.ServiceRequestCompleted:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	provider, err := h.repo.GetProviderByUserID(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	sr, err := h.repo.GetRequestByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if sr == nil {
		respondError(c, domain.ErrNotFound)
		return
	}
	if provider == nil || sr.ServiceProviderID != provider.ID {
		respondError(c, domain.ErrUnauthorized)
		return
	}
	if err := h.repo.UpdateRequestStatus(id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	h.notifications.Notify(sr.TenantID, fmt.Sprintf("Service request #%d is now %s", sr.ID, req.Status))
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}
