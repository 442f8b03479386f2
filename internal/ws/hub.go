package ws

import (
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const maxChatLen = 500

// Hub раздаёт сообщения чата всем подключённым клиентам.
// Один пользователь может держать несколько соединений (вкладки).
type Hub struct {
	Clients map[*Client]struct{}
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Clients: make(map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.Clients[c] = struct{}{}
	online := len(h.Clients)
	h.mu.Unlock()

	log.Printf("Hub.Register: user=%d online=%d", c.UserID, online)

	h.Broadcast(Message{
		Type:    MsgJoined,
		Payload: PresencePayload{UserID: c.UserID, Online: online},
	})
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.Clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.Clients, c)
	online := len(h.Clients)
	h.mu.Unlock()

	log.Printf("Hub.Unregister: user=%d online=%d", c.UserID, online)

	h.Broadcast(Message{
		Type:    MsgLeft,
		Payload: PresencePayload{UserID: c.UserID, Online: online},
	})
}

// Broadcast отправляет сообщение всем клиентам. Медленные клиенты
// с переполненным буфером пропускаются, а не блокируют хаб.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Hub.Broadcast: marshal error: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.Clients {
		select {
		case c.Send <- data:
		default:
			log.Printf("Hub.Broadcast: dropping message for slow client user=%d", c.UserID)
		}
	}
}

func (h *Hub) Online() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Clients)
}

// HandleMessage обрабатывает входящее сообщение от клиента.
func (h *Hub) HandleMessage(c *Client, raw []byte) {
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}

	if err := json.Unmarshal(raw, &msg); err != nil {
		c.SendMessage(Message{Type: MsgError, Payload: ErrorPayload{Message: "invalid message"}})
		return
	}

	switch msg.Type {
	case MsgChat:
		var p ChatPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			c.SendMessage(Message{Type: MsgError, Payload: ErrorPayload{Message: "invalid payload"}})
			return
		}

		text := strings.TrimSpace(p.Text)
		if text == "" {
			return
		}
		if utf8.RuneCountInString(text) > maxChatLen {
			c.SendMessage(Message{Type: MsgError, Payload: ErrorPayload{Message: "message too long"}})
			return
		}

		h.Broadcast(Message{
			Type: MsgMessage,
			Payload: ChatMessagePayload{
				UserID:   c.UserID,
				Username: c.Username,
				Text:     text,
				SentAt:   time.Now().Unix(),
			},
		})

	case MsgPing:
		// keepalive, ничего не делаем

	default:
		c.SendMessage(Message{Type: MsgError, Payload: ErrorPayload{Message: "unknown message type"}})
	}
}
