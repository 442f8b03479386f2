package ws

import (
	"encoding/json"
	"strings"
	"testing"
)

func newTestClient(userID int64, username string, hub *Hub) *Client {
	return &Client{
		UserID:   userID,
		Username: username,
		Send:     make(chan []byte, 16),
		Hub:      hub,
		Done:     make(chan struct{}),
	}
}

func drain(c *Client) []Message {
	var msgs []Message
	for {
		select {
		case data := <-c.Send:
			var m Message
			if err := json.Unmarshal(data, &m); err == nil {
				msgs = append(msgs, m)
			}
		default:
			return msgs
		}
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()

	a := newTestClient(1, "alice", hub)
	b := newTestClient(2, "bob", hub)

	hub.Register(a)
	hub.Register(b)

	if hub.Online() != 2 {
		t.Fatalf("Online() = %d; want 2", hub.Online())
	}

	drain(a)
	drain(b)

	raw, _ := json.Marshal(map[string]any{
		"type":    MsgChat,
		"payload": map[string]string{"text": "  hello  "},
	})
	hub.HandleMessage(a, raw)

	for _, c := range []*Client{a, b} {
		msgs := drain(c)
		if len(msgs) != 1 {
			t.Fatalf("user=%d got %d messages; want 1", c.UserID, len(msgs))
		}
		if msgs[0].Type != MsgMessage {
			t.Fatalf("user=%d got type %q; want %q", c.UserID, msgs[0].Type, MsgMessage)
		}
		payload := msgs[0].Payload.(map[string]any)
		if payload["text"] != "hello" {
			t.Fatalf("text = %q; want trimmed %q", payload["text"], "hello")
		}
		if payload["username"] != "alice" {
			t.Fatalf("username = %q; want alice", payload["username"])
		}
	}
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()

	a := newTestClient(1, "alice", hub)
	b := newTestClient(2, "bob", hub)

	hub.Register(a)
	hub.Register(b)
	hub.Unregister(b)

	if hub.Online() != 1 {
		t.Fatalf("Online() = %d; want 1", hub.Online())
	}

	drain(a)
	drain(b)

	hub.Broadcast(Message{Type: MsgMessage, Payload: ChatMessagePayload{Text: "x"}})

	if got := len(drain(b)); got != 0 {
		t.Fatalf("unregistered client received %d messages; want 0", got)
	}
	if got := len(drain(a)); got != 1 {
		t.Fatalf("registered client received %d messages; want 1", got)
	}
}

func TestHubRejectsInvalidMessages(t *testing.T) {
	hub := NewHub()
	a := newTestClient(1, "alice", hub)
	hub.Register(a)
	drain(a)

	cases := []struct {
		name string
		raw  string
		want string // expected error reply type, "" means no reply
	}{
		{"garbage", "not json", MsgError},
		{"unknown type", `{"type":"dance"}`, MsgError},
		{"empty text", `{"type":"chat","payload":{"text":"   "}}`, ""},
		{"too long", `{"type":"chat","payload":{"text":"` + strings.Repeat("a", 501) + `"}}`, MsgError},
		{"ping", `{"type":"ping"}`, ""},
	}

	for _, tc := range cases {
		hub.HandleMessage(a, []byte(tc.raw))
		msgs := drain(a)
		if tc.want == "" {
			if len(msgs) != 0 {
				t.Fatalf("%s: got %d messages; want none", tc.name, len(msgs))
			}
			continue
		}
		if len(msgs) != 1 || msgs[0].Type != tc.want {
			t.Fatalf("%s: got %v; want one %q reply", tc.name, msgs, tc.want)
		}
	}
}
