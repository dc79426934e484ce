package messaging

import (
	"strings"
	"time"
)

// Message is an immutable log entry in a conversation. The only mutation it
// ever sees is the one-directional read transition (IsRead false -> true).
// Seq is a store-assigned monotone tiebreaker for messages sharing a
// creation timestamp.
type Message struct {
	ID             string    `db:"id"`
	ConversationID string    `db:"conversation_id"`
	SenderID       string    `db:"sender_id"`
	Content        string    `db:"content"`
	IsRead         bool      `db:"is_read"`
	CreatedAt      time.Time `db:"created_at"`
	Seq            int64     `db:"seq"`
}

// NewMessage validates and normalizes an outgoing message. Content is
// trimmed; whitespace-only content is rejected before anything is persisted.
func NewMessage(conversationID, senderID, content string) (*Message, error) {
	if conversationID == "" || senderID == "" {
		return nil, ErrNotFound
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrEmptyContent
	}

	return &Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        trimmed,
	}, nil
}

// Preview returns the first n runes of the content, used for notification
// bodies.
func (m Message) Preview(n int) string {
	runes := []rune(m.Content)
	if len(runes) <= n {
		return m.Content
	}
	return string(runes[:n])
}
