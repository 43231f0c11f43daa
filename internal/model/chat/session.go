package chat

import (
	"strings"
	"time"
)

// Session is the per-user conversational state spanning requests. It is owned
// by the session registry; the orchestrator mutates it while holding the
// registry's per-session lock.
type Session struct {
	UserID       string
	Messages     []Message
	Context      Context
	LastActivity time.Time
}

// NewSession returns an empty session for the given user.
func NewSession(userID string) *Session {
	return &Session{
		UserID:       userID,
		Context:      Context{UserID: userID},
		LastActivity: time.Now().UTC(),
	}
}

// Append adds a turn to the history. Messages are append-only.
func (s *Session) Append(role, content string) {
	s.Messages = append(s.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
}

// Transcript renders the history as "Role: content" lines for the prompt.
func (s *Session) Transcript() string {
	lines := make([]string, 0, len(s.Messages))
	for _, msg := range s.Messages {
		lines = append(lines, roleLabel(msg.Role)+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}

func roleLabel(role string) string {
	switch role {
	case RoleUser:
		return "User"
	case RoleBot:
		return "Bot"
	default:
		return role
	}
}
