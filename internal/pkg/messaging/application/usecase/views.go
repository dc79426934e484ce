package usecase

import (
	"time"

	messaging "github.com/zennajjames/TheVillage/internal/pkg/messaging/application/domain"
	directory "github.com/zennajjames/TheVillage/internal/pkg/directory/port"
)

// ConversationView is a conversation with its participants hydrated from the
// user directory.
type ConversationView struct {
	ID           string           `json:"id"`
	Participants []directory.User `json:"participants"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// LastMessageView is the tail of a conversation as shown in the list.
type LastMessageView struct {
	Content   string    `json:"content"`
	SenderID  string    `json:"senderId"`
	CreatedAt time.Time `json:"createdAt"`
	IsRead    bool      `json:"isRead"`
}

// ConversationSummary is one row of a user's conversation list.
// OtherUser may be nil if the account behind it was deleted.
type ConversationSummary struct {
	ID          string           `json:"id"`
	OtherUser   *directory.User  `json:"otherUser"`
	LastMessage *LastMessageView `json:"lastMessage"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// MessageView pairs a stored message with its sender's public profile.
type MessageView struct {
	messaging.Message
	Sender *directory.User `json:"sender"`
}
