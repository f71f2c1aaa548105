package handler

import (
	"fmt"
	"net/http"

	"homehub/internal/domain"
	"homehub/internal/middleware"
	"homehub/internal/models"
	"homehub/internal/repository"
	"homehub/internal/service"

	"github.com/gin-gonic/gin"
)

type MaintenanceHandler struct {
	repo          *repository.MaintenanceRepository
	houses        *repository.HouseRepository
	notifications *service.NotificationService
}

func NewMaintenanceHandler(repo *repository.MaintenanceRepository, houses *repository.HouseRepository, notifications *service.NotificationService) *MaintenanceHandler {
	return &MaintenanceHandler{repo: repo, houses: houses, notifications: notifications}
}

type maintenanceRequest struct {
	HouseID uint   `json:"house_id" binding:"required"`
	Issue   string `json:"issue" binding:"required,max=200"`
}

// Create files a maintenance request and notifies the house owner. Tenant only.
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req maintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	house, err := h.houses.GetByID(req.HouseID)
	if err != nil {
		respondError(c, err)
		return
	}
	if house == nil {
		respondError(c, domain.ErrHouseNotFound)
		return
	}
	m := &models.MaintenanceRequest{
		TenantID: middleware.GetUserID(c),
		HouseID:  req.HouseID,
		Issue:    req.Issue,
		Status:   domain.MaintenanceOpen,
	}
	if err := h.repo.Create(m); err != nil {
		respondError(c, err)
		return
	}
	h.notifications.Notify(house.OwnerID, fmt.Sprintf("Maintenance request #%d for %s: %s", m.ID, house.Title, m.Issue))
	c.JSON(http.StatusCreated, m)
}

func (h *MaintenanceHandler) ListMine(c *gin.Context) {
	requests, err := h.repo.ListByTenant(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (h *MaintenanceHandler) ListForLandlord(c *gin.Context) {
	requests, err := h.repo.ListForLandlord(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// UpdateStatus moves a request between Open, In Progress and Resolved.
// Only the owner of the house the request was filed against may update it.
func (h *MaintenanceHandler) UpdateStatus(c *gin.Context) {
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
	case domain.MaintenanceOpen, domain.MaintenanceInProgress, domain.MaintenanceResolved:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	m, err := h.repo.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if m == nil {
		respondError(c, domain.ErrNotFound)
		return
	}
	house, err := h.houses.GetByID(m.HouseID)
	if err != nil {
		respondError(c, err)
		return
	}
	if house == nil || house.OwnerID != middleware.GetUserID(c) {
		respondError(c, domain.ErrUnauthorized)
		return
	}
	if err := h.repo.UpdateStatus(id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	h.notifications.Notify(m.TenantID, fmt.Sprintf("Maintenance request #%d is now %s", m.ID, req.Status))
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}
