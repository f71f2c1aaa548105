package ws

import (
	"encoding/json"
	"sync"
)

// SupportRoom is one conversation: the user plus any agents attending it.
type SupportRoom struct {
	UserID  uint
	clients map[*Client]struct{}
	mu      sync.RWMutex
}

func NewSupportRoom(userID uint) *SupportRoom {
	return &SupportRoom{
		UserID:  userID,
		clients: make(map[*Client]struct{}),
	}
}

func (r *SupportRoom) Join(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c] = struct{}{}
}

func (r *SupportRoom) Leave(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, c)
}

func (r *SupportRoom) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Broadcast sends payload to everyone in the room except the sender. Slow
// consumers are skipped rather than blocking the room.
func (r *SupportRoom) Broadcast(from *Client, payload interface{}) {
	data, _ := json.Marshal(payload)
	r.mu.RLock()
	clients := make([]*Client, 0, len(r.clients))
	for c := range r.clients {
		if c != from {
			clients = append(clients, c)
		}
	}
	r.mu.RUnlock()
	for _, c := range clients {
		select {
		case c.Send <- data:
		default:
		}
	}
}

// SupportHub holds all support conversations keyed by the user they belong to.
type SupportHub struct {
	mu    sync.RWMutex
	rooms map[uint]*SupportRoom
}

func NewSupportHub() *SupportHub {
	return &SupportHub{rooms: make(map[uint]*SupportRoom)}
}

func (h *SupportHub) GetOrCreateRoom(userID uint) *SupportRoom {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[userID]; ok {
		return r
	}
	r := NewSupportRoom(userID)
	h.rooms[userID] = r
	return r
}

func (h *SupportHub) RemoveRoomIfEmpty(userID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[userID]; ok && r.ClientCount() == 0 {
		delete(h.rooms, userID)
	}
}
