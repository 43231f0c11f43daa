package chat

import "time"

// Message roles. The web client expects "bot" rather than "assistant", so
// that is the wire value.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Message is one immutable conversation turn.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
