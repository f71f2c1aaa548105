package handler

import (
	"io"
	"log"
	"net/http"

	"homehub/internal/service"

	"github.com/gin-gonic/gin"
)

type MpesaWebhookHandler struct {
	reconcile *service.ReconcileService
}

func NewMpesaWebhookHandler(reconcile *service.ReconcileService) *MpesaWebhookHandler {
	return &MpesaWebhookHandler{reconcile: reconcile}
}

// Handle processes the gateway's async STK result. The gateway has no way to
// act on an error response, so this endpoint acknowledges everything;
// malformed bodies and unmatched callbacks are logged inside the service.
func (h *MpesaWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("[MPESA callback] body read error: %v", err)
		c.JSON(http.StatusOK, gin.H{"ResultCode": 0, "ResultDesc": "Accepted"})
		return
	}
	h.reconcile.HandleCallback(body)
	c.JSON(http.StatusOK, gin.H{"ResultCode": 0, "ResultDesc": "Accepted"})
}
