package handler

import (
	"net/http"

	"homehub/internal/domain"
	"homehub/internal/middleware"
	"homehub/internal/repository"

	"github.com/gin-gonic/gin"
)

type MeHandler struct {
	users *repository.UserRepository
}

func NewMeHandler(users *repository.UserRepository) *MeHandler {
	return &MeHandler{users: users}
}

func (h *MeHandler) GetProfile(c *gin.Context) {
	u, err := h.users.GetByID(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if u == nil {
		respondError(c, domain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfile changes the caller's contact and preference fields. Email and
// role are immutable here.
func (h *MeHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		Name         string `json:"name"`
		PhoneNumber  string `json:"phone_number"`
		MpesaDetails string `json:"mpesa_details"`
		Language     string `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.users.GetByID(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if u == nil {
		respondError(c, domain.ErrNotFound)
		return
	}
	if req.Name != "" {
		u.Name = req.Name
	}
	if req.PhoneNumber != "" {
		u.PhoneNumber = req.PhoneNumber
	}
	if req.MpesaDetails != "" {
		u.MpesaDetails = req.MpesaDetails
	}
	if req.Language != "" {
		u.Language = req.Language
	}
	if err := h.users.Update(u); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
