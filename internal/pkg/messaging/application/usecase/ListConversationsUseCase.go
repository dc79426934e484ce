package usecase

import (
	"context"
	"fmt"

	directory "github.com/zennajjames/TheVillage/internal/pkg/directory/port"
	repository "github.com/zennajjames/TheVillage/internal/pkg/messaging/persistence/repository/port"
)

// ListConversationsInput wraps the requesting user.
type ListConversationsInput struct {
	RequesterID string
}

// ListConversationsUseCase returns the requester's conversations newest
// activity first, each with the other participant's public profile and the
// latest message if one exists.
type ListConversationsUseCase struct {
	Conversations repository.ConversationRepository
	Directory     directory.Directory
}

func NewListConversationsUseCase(conversations repository.ConversationRepository, dir directory.Directory) *ListConversationsUseCase {
	return &ListConversationsUseCase{Conversations: conversations, Directory: dir}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, in ListConversationsInput) ([]ConversationSummary, error) {
	if in.RequesterID == "" {
		return nil, fmt.Errorf("requester id is required")
	}

	items, err := uc.Conversations.ListForUser(ctx, in.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	otherIDs := make([]string, 0, len(items))
	for _, item := range items {
		otherIDs = append(otherIDs, item.OtherUserID)
	}
	users, err := uc.Directory.GetUsers(ctx, otherIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	summaries := make([]ConversationSummary, 0, len(items))
	for _, item := range items {
		summary := ConversationSummary{
			ID:        item.Conversation.ID,
			UpdatedAt: item.Conversation.UpdatedAt,
		}
		if u, ok := users[item.OtherUserID]; ok {
			other := u
			summary.OtherUser = &other
		}
		if item.LastMessage != nil {
			summary.LastMessage = &LastMessageView{
				Content:   item.LastMessage.Content,
				SenderID:  item.LastMessage.SenderID,
				CreatedAt: item.LastMessage.CreatedAt,
				IsRead:    item.LastMessage.IsRead,
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
