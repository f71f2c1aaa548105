package handler

import (
	"net/http"

	"homehub/internal/domain"
	"homehub/internal/middleware"
	"homehub/internal/models"
	"homehub/internal/repository"

	"github.com/gin-gonic/gin"
)

type SupportHandler struct {
	repo *repository.SupportRepository
}

func NewSupportHandler(repo *repository.SupportRepository) *SupportHandler {
	return &SupportHandler{repo: repo}
}

type ticketRequest struct {
	Subject     string `json:"subject" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
}

func (h *SupportHandler) CreateTicket(c *gin.Context) {
	var req ticketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t := &models.SupportTicket{
		UserID:      middleware.GetUserID(c),
		Subject:     req.Subject,
		Description: req.Description,
		Status:      domain.TicketOpen,
	}
	if err := h.repo.CreateTicket(t); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *SupportHandler) ListMyTickets(c *gin.Context) {
	tickets, err := h.repo.ListTicketsByUser(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

// ListOpenTickets is the agent queue, oldest first.
func (h *SupportHandler) ListOpenTickets(c *gin.Context) {
	tickets, err := h.repo.ListOpenTickets()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

// UpdateTicketStatus resolves or escalates a ticket. Agent only.
func (h *SupportHandler) UpdateTicketStatus(c *gin.Context) {
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
	case domain.TicketOpen, domain.TicketResolved, domain.TicketEscalated:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	t, err := h.repo.GetTicketByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if t == nil {
		respondError(c, domain.ErrNotFound)
		return
	}
	if err := h.repo.UpdateTicketStatus(id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

// Conversation returns the caller's chat history and marks it read. Agents
// pass ?user_id= to read someone else's conversation.
func (h *SupportHandler) Conversation(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if middleware.GetRole(c) == domain.RoleSupportAgent {
		if raw := c.Query("user_id"); raw != "" {
			id, err := parseQueryID(c, raw)
			if err != nil {
				return
			}
			userID = id
		}
	}
	messages, err := h.repo.ListConversation(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.repo.MarkConversationRead(userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
