package ws

const (
	// client - server
	MsgChat = "chat"
	MsgPing = "ping"

	// server - client
	MsgMessage = "message"
	MsgJoined  = "joined"
	MsgLeft    = "left"
	MsgError   = "error"
)

type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// client → server
type ChatPayload struct {
	Text string `json:"text"`
}

// server → client
type ChatMessagePayload struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Text     string `json:"text"`
	SentAt   int64  `json:"sent_at"`
}

type PresencePayload struct {
	UserID int64 `json:"user_id"`
	Online int   `json:"online"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
