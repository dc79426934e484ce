package messaging

import "errors"

// Domain-level errors for messaging behaviors
var (
	// ErrNotFound covers both a missing conversation and a requester that is
	// not a participant; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("messaging: conversation not found")

	ErrNotParticipant     = errors.New("messaging: user is not a participant in the conversation")
	ErrSelfConversation   = errors.New("messaging: cannot open a conversation with yourself")
	ErrEmptyContent       = errors.New("messaging: message content is empty")
	ErrConversationExists = errors.New("messaging: conversation already exists for this pair")
)
