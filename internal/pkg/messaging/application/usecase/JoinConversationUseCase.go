package usecase

import (
	"context"
	"fmt"

	messaging "github.com/zennajjames/TheVillage/internal/pkg/messaging/application/domain"
	repository "github.com/zennajjames/TheVillage/internal/pkg/messaging/persistence/repository/port"
)

// JoinConversationInput validates a request to attach a live session to a
// conversation room.
type JoinConversationInput struct {
	ConversationID string
	UserID         string
}

// JoinConversationUseCase ensures the user belongs to the conversation before
// the gateway subscribes their session to its room.
type JoinConversationUseCase struct {
	Conversations repository.ConversationRepository
}

func NewJoinConversationUseCase(conversations repository.ConversationRepository) *JoinConversationUseCase {
	return &JoinConversationUseCase{Conversations: conversations}
}

func (uc *JoinConversationUseCase) Execute(ctx context.Context, in JoinConversationInput) error {
	if in.ConversationID == "" || in.UserID == "" {
		return fmt.Errorf("conversation id and user id are required")
	}

	ok, err := uc.Conversations.IsParticipant(ctx, in.ConversationID, in.UserID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		return messaging.ErrNotParticipant
	}
	return nil
}
