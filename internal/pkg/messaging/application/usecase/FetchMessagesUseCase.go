package usecase

import (
	"context"
	"errors"
	"fmt"

	directory "github.com/zennajjames/TheVillage/internal/pkg/directory/port"
	messaging "github.com/zennajjames/TheVillage/internal/pkg/messaging/application/domain"
	repository "github.com/zennajjames/TheVillage/internal/pkg/messaging/persistence/repository/port"
)

// FetchMessagesInput identifies the requester and the thread being opened.
type FetchMessagesInput struct {
	RequesterID    string
	ConversationID string
}

// FetchMessagesUseCase returns the full ordered history of a conversation and
// marks the messages not sent by the requester as read; opening a thread
// implicitly acknowledges it. A requester outside the conversation gets the
// same not-found as a missing conversation.
type FetchMessagesUseCase struct {
	Conversations repository.ConversationRepository
	Messages      repository.MessageRepository
	Directory     directory.Directory
}

func NewFetchMessagesUseCase(conversations repository.ConversationRepository, messages repository.MessageRepository, dir directory.Directory) *FetchMessagesUseCase {
	return &FetchMessagesUseCase{Conversations: conversations, Messages: messages, Directory: dir}
}

func (uc *FetchMessagesUseCase) Execute(ctx context.Context, in FetchMessagesInput) ([]MessageView, error) {
	if in.RequesterID == "" || in.ConversationID == "" {
		return nil, fmt.Errorf("requester and conversation id are required")
	}

	conv, err := uc.Conversations.FindByID(ctx, in.ConversationID)
	if errors.Is(err, messaging.ErrNotFound) {
		return nil, messaging.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if conv.OtherParticipant(in.RequesterID) == "" {
		return nil, messaging.ErrNotFound
	}

	msgs, err := uc.Messages.ListOrdered(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if _, err := uc.Messages.MarkReadExceptSender(ctx, in.ConversationID, in.RequesterID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	users, err := uc.Directory.GetUsers(ctx, conv.ParticipantIDs())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	views := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		view := MessageView{Message: m}
		if u, ok := users[m.SenderID]; ok {
			sender := u
			view.Sender = &sender
		}
		views = append(views, view)
	}
	return views, nil
}
