package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"homehub/config"
	"homehub/internal/auth"
	"homehub/internal/domain"
	"homehub/internal/models"
	"homehub/internal/repository"
	"homehub/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	supportWriteWait  = 10 * time.Second
	supportPongWait   = 60 * time.Second
	supportPingPeriod = (supportPongWait * 9) / 10
)

var supportUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// UpgradeSupportWS upgrades to WebSocket for the support chat; query: token,
// plus user_id when an agent joins someone else's conversation. Regular users
// always land in their own room.
func UpgradeSupportWS(cfg *config.JWTConfig, hub *ws.SupportHub, supportRepo *repository.SupportRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		roomUserID := claims.UserID
		if claims.Role == domain.RoleSupportAgent {
			if raw := c.Query("user_id"); raw != "" {
				id, err := parseQueryID(c, raw)
				if err != nil {
					return
				}
				roomUserID = id
			}
		}
		conn, err := supportUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		client := ws.NewClient(claims.UserID, claims.Role)
		room := hub.GetOrCreateRoom(roomUserID)
		room.Join(client)
		defer func() {
			room.Leave(client)
			client.Close()
			hub.RemoveRoomIfEmpty(roomUserID)
		}()

		conn.SetReadDeadline(time.Now().Add(supportPongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(supportPongWait))
			return nil
		})
		go func() {
			ticker := time.NewTicker(supportPingPeriod)
			defer ticker.Stop()
			for {
				select {
				case msg, ok := <-client.Send:
					if !ok {
						return
					}
					conn.SetWriteDeadline(time.Now().Add(supportWriteWait))
					if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
						return
					}
				case <-ticker.C:
					conn.SetWriteDeadline(time.Now().Add(supportWriteWait))
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						return
					}
				}
			}
		}()
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				break
			}
			var msg struct {
				Type    string `json:"type"`
				Message string `json:"message"`
			}
			if json.Unmarshal(raw, &msg) != nil || msg.Type != "message" || msg.Message == "" {
				continue
			}
			sm := &models.SupportMessage{
				UserID:  roomUserID,
				Message: msg.Message,
			}
			if claims.Role == domain.RoleSupportAgent {
				agentID := claims.UserID
				sm.AgentID = &agentID
			}
			if err := supportRepo.CreateMessage(sm); err != nil {
				continue
			}
			payload := map[string]interface{}{
				"type":       "message",
				"id":         sm.ID,
				"user_id":    sm.UserID,
				"agent_id":   sm.AgentID,
				"message":    sm.Message,
				"created_at": sm.CreatedAt,
			}
			room.Broadcast(client, payload)
		}
	}
}
