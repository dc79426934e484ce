package messaging

// Participant binds a user to a conversation.
// Created atomically with its conversation and immutable afterwards.
// Primary key: (ConversationID, UserID)
type Participant struct {
	ConversationID string `db:"conversation_id"`
	UserID         string `db:"user_id"`
}
