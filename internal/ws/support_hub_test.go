package ws

import (
	"testing"
)

func TestRoomBroadcastSkipsSender(t *testing.T) {
	room := NewSupportRoom(1)
	sender := NewClient(1, "tenant")
	agent := NewClient(2, "agent")
	room.Join(sender)
	room.Join(agent)

	room.Broadcast(sender, map[string]string{"type": "message", "message": "hello"})

	select {
	case <-agent.Send:
	default:
		t.Error("agent should have received the broadcast")
	}
	select {
	case <-sender.Send:
		t.Error("sender must not receive its own broadcast")
	default:
	}
}

// A consumer with a full buffer is skipped rather than blocking the room.
func TestRoomBroadcastSkipsSlowConsumer(t *testing.T) {
	room := NewSupportRoom(1)
	sender := NewClient(1, "tenant")
	slow := &Client{UserID: 2, Role: "agent", Send: make(chan []byte)}
	room.Join(sender)
	room.Join(slow)

	done := make(chan struct{})
	go func() {
		room.Broadcast(sender, map[string]string{"type": "message"})
		close(done)
	}()
	<-done
}

func TestHubRoomLifecycle(t *testing.T) {
	hub := NewSupportHub()
	r1 := hub.GetOrCreateRoom(7)
	r2 := hub.GetOrCreateRoom(7)
	if r1 != r2 {
		t.Error("same user must map to the same room")
	}

	c := NewClient(7, "tenant")
	r1.Join(c)
	hub.RemoveRoomIfEmpty(7)
	if hub.GetOrCreateRoom(7) != r1 {
		t.Error("occupied room must not be removed")
	}

	r1.Leave(c)
	hub.RemoveRoomIfEmpty(7)
	if hub.GetOrCreateRoom(7) == r1 {
		t.Error("empty room must be removed and recreated fresh")
	}
}

func TestClientCloseIdempotent(t *testing.T) {
	c := NewClient(1, "tenant")
	c.Close()
	c.Close() // must not panic
}
