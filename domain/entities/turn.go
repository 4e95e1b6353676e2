package entities

import "time"

// Role identifies the speaker of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is a single entry in the conversation log. History files
// without timestamps still load; the field just unmarshals to zero.
type ConversationTurn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// History is the append-only ordered conversation log for a session.
type History []ConversationTurn

// NewTurn creates a timestamped conversation turn.
func NewTurn(role Role, content string) ConversationTurn {
	return ConversationTurn{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// Append returns the history with the given turn added. The receiver is not
// shared; callers keep the returned slice.
func (h History) Append(turn ConversationTurn) History {
	return append(h, turn)
}

// ContextWindow returns the most recent turns, bounded to pairs user/assistant
// messages (at most 2*pairs turns). Storage is never mutated; the returned
// slice aliases the tail of the history and must be treated as read-only.
func (h History) ContextWindow(pairs int) History {
	if pairs <= 0 {
		return nil
	}
	limit := 2 * pairs
	if len(h) <= limit {
		return h
	}
	return h[len(h)-limit:]
}
