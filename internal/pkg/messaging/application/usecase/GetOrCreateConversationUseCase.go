package usecase

import (
	"context"
	"errors"
	"fmt"

	directory "github.com/zennajjames/TheVillage/internal/pkg/directory/port"
	messaging "github.com/zennajjames/TheVillage/internal/pkg/messaging/application/domain"
	repository "github.com/zennajjames/TheVillage/internal/pkg/messaging/persistence/repository/port"
)

// GetOrCreateConversationInput identifies the requester and the user they
// want to talk to.
type GetOrCreateConversationInput struct {
	RequesterID string
	OtherUserID string
}

// GetOrCreateConversationUseCase returns the unique conversation for a user
// pair, creating it on first contact. Safe to call concurrently: the store
// enforces pair uniqueness and the loser of a create race falls back to a
// fresh lookup.
type GetOrCreateConversationUseCase struct {
	Conversations repository.ConversationRepository
	Directory     directory.Directory
}

func NewGetOrCreateConversationUseCase(conversations repository.ConversationRepository, dir directory.Directory) *GetOrCreateConversationUseCase {
	return &GetOrCreateConversationUseCase{Conversations: conversations, Directory: dir}
}

// Execute returns the conversation view and whether this call created it,
// so the REST layer can answer 201 on first contact and 200 afterwards.
func (uc *GetOrCreateConversationUseCase) Execute(ctx context.Context, in GetOrCreateConversationInput) (*ConversationView, bool, error) {
	if in.RequesterID == "" || in.OtherUserID == "" {
		return nil, false, fmt.Errorf("requester and other user id are required")
	}

	low, high, err := messaging.CanonicalPair(in.RequesterID, in.OtherUserID)
	if err != nil {
		return nil, false, err
	}

	created := false
	conv, err := uc.Conversations.FindByPair(ctx, low, high)
	if errors.Is(err, messaging.ErrNotFound) {
		conv, err = uc.Conversations.Create(ctx, low, high)
		if err == nil {
			created = true
		} else if errors.Is(err, messaging.ErrConversationExists) {
			// Lost the create race; the winner's row is visible now.
			conv, err = uc.Conversations.FindByPair(ctx, low, high)
		}
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	view, err := uc.hydrate(ctx, conv)
	if err != nil {
		return nil, false, err
	}
	return view, created, nil
}

func (uc *GetOrCreateConversationUseCase) hydrate(ctx context.Context, conv *messaging.Conversation) (*ConversationView, error) {
	users, err := uc.Directory.GetUsers(ctx, conv.ParticipantIDs())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	view := &ConversationView{
		ID:        conv.ID,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	}
	for _, id := range conv.ParticipantIDs() {
		if u, ok := users[id]; ok {
			view.Participants = append(view.Participants, u)
		}
	}
	return view, nil
}
