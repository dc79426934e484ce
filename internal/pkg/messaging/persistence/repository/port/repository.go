package repository

import (
	"context"

	messaging "github.com/zennajjames/TheVillage/internal/pkg/messaging/application/domain"
)

// ConversationListItem is one row of a user's conversation list: the
// conversation, the member that is not the requester, and the most recent
// message if any exists yet.
type ConversationListItem struct {
	Conversation messaging.Conversation
	OtherUserID  string
	LastMessage  *messaging.Message
}

// ConversationRepository persists conversations and their participant pair.
// It is the sole authority for the one-conversation-per-unordered-pair
// invariant.
type ConversationRepository interface {
	// FindByPair returns the conversation for the canonical pair or
	// messaging.ErrNotFound.
	FindByPair(ctx context.Context, userLow, userHigh string) (*messaging.Conversation, error)

	// FindByID returns the conversation or messaging.ErrNotFound.
	FindByID(ctx context.Context, id string) (*messaging.Conversation, error)

	// Create inserts the conversation and both participant rows as one
	// atomic unit. A concurrent create for the same pair surfaces
	// messaging.ErrConversationExists; the caller re-reads and takes the
	// winner.
	Create(ctx context.Context, userLow, userHigh string) (*messaging.Conversation, error)

	// ListForUser returns the user's conversations ordered by last activity
	// descending.
	ListForUser(ctx context.Context, userID string) ([]ConversationListItem, error)

	// Touch advances the conversation's last-activity timestamp to now.
	Touch(ctx context.Context, conversationID string) error

	// IsParticipant reports membership without revealing anything else.
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)
}

// MessageRepository persists the append-only message log of a conversation
// and is its single ordering authority.
type MessageRepository interface {
	// Append stores a validated message and returns it with store-assigned
	// identity, timestamp and sequence.
	Append(ctx context.Context, m messaging.Message) (*messaging.Message, error)

	// ListOrdered returns the full history ascending by (created_at, seq).
	ListOrdered(ctx context.Context, conversationID string) ([]messaging.Message, error)

	// MarkReadExceptSender flips the read flag on every unread message in
	// the conversation not sent by excludeSenderID. Idempotent; returns the
	// number of rows transitioned.
	MarkReadExceptSender(ctx context.Context, conversationID, excludeSenderID string) (int64, error)
}
