package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	messaging "github.com/zennajjames/TheVillage/internal/pkg/messaging/application/domain"
)

func fetchFixture(t *testing.T) (*FetchMessagesUseCase, *memConversationRepo, *memMessageRepo) {
	t.Helper()
	convs := newMemConversationRepo()
	convs.add("c1", "alice", "bob")
	msgs := newMemMessageRepo()
	dir := newMemDirectory(testUser("alice", "Alice", "A", true), testUser("bob", "Bob", "B", true))
	return NewFetchMessagesUseCase(convs, msgs, dir), convs, msgs
}

func appendMsg(t *testing.T, msgs *memMessageRepo, conversationID, senderID, content string) {
	t.Helper()
	m, err := messaging.NewMessage(conversationID, senderID, content)
	require.NoError(t, err)
	_, err = msgs.Append(context.Background(), *m)
	require.NoError(t, err)
}

func TestFetchMessagesReturnsOrderedHistoryAndMarksRead(t *testing.T) {
	uc, _, msgs := fetchFixture(t)
	appendMsg(t, msgs, "c1", "bob", "first")
	appendMsg(t, msgs, "c1", "alice", "second")
	appendMsg(t, msgs, "c1", "bob", "third")

	views, err := uc.Execute(context.Background(), FetchMessagesInput{
		RequesterID:    "alice",
		ConversationID: "c1",
	})
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "first", views[0].Content)
	assert.Equal(t, "second", views[1].Content)
	assert.Equal(t, "third", views[2].Content)

	// Senders are hydrated from the directory.
	require.NotNil(t, views[0].Sender)
	assert.Equal(t, "bob", views[0].Sender.ID)

	// Opening the thread acknowledged bob's messages; alice's own stays as is.
	assert.Equal(t, 1, msgs.unreadCount("c1"))
}

func TestFetchMessagesIsIdempotent(t *testing.T) {
	uc, _, msgs := fetchFixture(t)
	appendMsg(t, msgs, "c1", "bob", "hello")

	for i := 0; i < 2; i++ {
		views, err := uc.Execute(context.Background(), FetchMessagesInput{
			RequesterID:    "alice",
			ConversationID: "c1",
		})
		require.NoError(t, err)
		require.Len(t, views, 1)
	}
	assert.Equal(t, 0, msgs.unreadCount("c1"))
}

func TestFetchMessagesMasksNonParticipantAsNotFound(t *testing.T) {
	uc, _, _ := fetchFixture(t)

	_, err := uc.Execute(context.Background(), FetchMessagesInput{
		RequesterID:    "mallory",
		ConversationID: "c1",
	})
	assert.ErrorIs(t, err, messaging.ErrNotFound)
}

func TestFetchMessagesUnknownConversation(t *testing.T) {
	uc, _, _ := fetchFixture(t)

	_, err := uc.Execute(context.Background(), FetchMessagesInput{
		RequesterID:    "alice",
		ConversationID: "nope",
	})
	assert.ErrorIs(t, err, messaging.ErrNotFound)
}

func TestFetchMessagesEmptyConversation(t *testing.T) {
	uc, _, _ := fetchFixture(t)

	views, err := uc.Execute(context.Background(), FetchMessagesInput{
		RequesterID:    "bob",
		ConversationID: "c1",
	})
	require.NoError(t, err)
	assert.Empty(t, views)
}
