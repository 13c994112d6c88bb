package websocket

import (
	"encoding/json"
	"log/slog"
	"testing"
)

func testClient(hub *Hub, listID int64) *Client {
	return NewClient(hub, nil, listID)
}

func recvMessage(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data := <-c.send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("unmarshal broadcast: %v", err)
		}
		return msg
	default:
		t.Fatal("expected a message, channel empty")
		return Message{}
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub(slog.Default())
	c := testClient(hub, 1)

	hub.Register(c)
	if hub.ClientCount() != 1 {
		t.Errorf("client count = %d, want 1", hub.ClientCount())
	}

	hub.Unregister(c)
	if hub.ClientCount() != 0 {
		t.Errorf("client count = %d, want 0", hub.ClientCount())
	}

	// Double unregister must not panic.
	hub.Unregister(c)
}

func TestBroadcastRoutesByList(t *testing.T) {
	hub := NewHub(slog.Default())
	watching := testClient(hub, 1)
	other := testClient(hub, 2)
	hub.Register(watching)
	hub.Register(other)

	hub.Broadcast(NewMessage("item", "created", 7, 1, nil))

	msg := recvMessage(t, watching)
	if msg.Type != "item_created" || msg.ID != 7 || msg.ListID != 1 {
		t.Errorf("message = %+v", msg)
	}

	select {
	case <-other.send:
		t.Error("client on another list received the message")
	default:
	}
}

func TestBroadcastListZeroReachesEveryone(t *testing.T) {
	hub := NewHub(slog.Default())
	a := testClient(hub, 1)
	b := testClient(hub, 2)
	hub.Register(a)
	hub.Register(b)

	hub.Broadcast(NewMessage("backup", "completed", 0, 0, nil))

	for _, c := range []*Client{a, b} {
		msg := recvMessage(t, c)
		if msg.Type != "backup_completed" {
			t.Errorf("message type = %q", msg.Type)
		}
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := NewHub(slog.Default())
	c := testClient(hub, 1)
	hub.Register(c)

	for i := 0; i < sendBufferSize+5; i++ {
		hub.Broadcast(NewMessage("item", "created", int64(i), 1, nil))
	}

	if got := len(c.send); got != sendBufferSize {
		t.Errorf("buffered = %d, want %d", got, sendBufferSize)
	}
}
