package chat

import "time"

// Role restricts message authorship to the two chat participants.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

const (
	// DefaultListLimit bounds how many messages a listing returns.
	DefaultListLimit = 500

	// MaxMessageRunes caps user input length, counted in Unicode runes.
	MaxMessageRunes = 500
)

// Message is one turn in the chat log. The id and timestamp are assigned by
// the store; ordering by id equals chronological order.
type Message struct {
	ID        uint      `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Exchange pairs the persisted user message with the generated reply.
type Exchange struct {
	User      Message `json:"user"`
	Assistant Message `json:"assistant"`
}
