package ws

import (
	"sync"
)

// Client represents a single WebSocket connection with user context.
type Client struct {
	UserID uint
	Role   string
	Send   chan []byte

	mu     sync.Mutex
	closed bool
}

func NewClient(userID uint, role string) *Client {
	return &Client{
		UserID: userID,
		Role:   role,
		Send:   make(chan []byte, 256),
	}
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}
