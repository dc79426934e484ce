package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	messaging "github.com/zennajjames/TheVillage/internal/pkg/messaging/application/domain"
	notification "github.com/zennajjames/TheVillage/internal/pkg/notification/port"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func sendFixture(t *testing.T, recipientNotify bool) (*SendMessageUseCase, *memConversationRepo, *memMessageRepo, *chanDispatcher) {
	t.Helper()
	convs := newMemConversationRepo()
	convs.add("c1", "alice", "bob")
	msgs := newMemMessageRepo()
	dir := newMemDirectory(testUser("alice", "Alice", "A", true), testUser("bob", "Bob", "B", recipientNotify))
	dispatcher := newChanDispatcher()
	return NewSendMessageUseCase(convs, msgs, dir, dispatcher, quietLogger()), convs, msgs, dispatcher
}

func waitForDispatch(t *testing.T, d *chanDispatcher) notification.NewMessageNotification {
	t.Helper()
	select {
	case n := <-d.calls:
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification dispatch")
		return notification.NewMessageNotification{}
	}
}

func TestSendMessagePersistsAndNotifies(t *testing.T) {
	uc, convs, msgs, dispatcher := sendFixture(t, true)

	view, err := uc.Execute(context.Background(), SendMessageInput{
		RequesterID:    "alice",
		ConversationID: "c1",
		Content:        "  hi bob  ",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "hi bob", view.Content)
	assert.False(t, view.IsRead)
	require.NotNil(t, view.Sender)
	assert.Equal(t, "alice", view.Sender.ID)

	stored, err := msgs.ListOrdered(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, []string{"c1"}, convs.touched)

	n := waitForDispatch(t, dispatcher)
	assert.Equal(t, "bob@example.com", n.ToEmail)
	assert.Equal(t, "Bob", n.ToName)
	assert.Equal(t, "Alice A", n.FromName)
	assert.Equal(t, "hi bob", n.Preview)
	assert.Equal(t, "c1", n.ConversationID)
}

func TestSendMessageTruncatesNotificationPreview(t *testing.T) {
	uc, _, _, dispatcher := sendFixture(t, true)

	_, err := uc.Execute(context.Background(), SendMessageInput{
		RequesterID:    "alice",
		ConversationID: "c1",
		Content:        strings.Repeat("é", 150),
	})
	require.NoError(t, err)

	n := waitForDispatch(t, dispatcher)
	assert.Equal(t, 100, len([]rune(n.Preview)))
}

func TestSendMessageSkipsNotificationWhenOptedOut(t *testing.T) {
	uc, _, msgs, dispatcher := sendFixture(t, false)

	_, err := uc.Execute(context.Background(), SendMessageInput{
		RequesterID:    "alice",
		ConversationID: "c1",
		Content:        "hi",
	})
	require.NoError(t, err)

	stored, err := msgs.ListOrdered(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, stored, 1, "opt-out affects notification only, never persistence")

	select {
	case <-dispatcher.calls:
		t.Fatal("dispatched a notification to an opted-out recipient")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestSendMessageDispatchFailureDoesNotFailSend(t *testing.T) {
	uc, _, msgs, dispatcher := sendFixture(t, true)
	dispatcher.err = errors.New("queue down")

	view, err := uc.Execute(context.Background(), SendMessageInput{
		RequesterID:    "alice",
		ConversationID: "c1",
		Content:        "hi",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	waitForDispatch(t, dispatcher)

	stored, err := msgs.ListOrdered(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestSendMessageRejectsEmptyContent(t *testing.T) {
	uc, _, msgs, _ := sendFixture(t, true)

	_, err := uc.Execute(context.Background(), SendMessageInput{
		RequesterID:    "alice",
		ConversationID: "c1",
		Content:        "   ",
	})
	assert.ErrorIs(t, err, messaging.ErrEmptyContent)

	stored, listErr := msgs.ListOrdered(context.Background(), "c1")
	require.NoError(t, listErr)
	assert.Empty(t, stored)
}

func TestSendMessageMasksNonParticipantAsNotFound(t *testing.T) {
	uc, _, _, _ := sendFixture(t, true)

	_, err := uc.Execute(context.Background(), SendMessageInput{
		RequesterID:    "mallory",
		ConversationID: "c1",
		Content:        "hi",
	})
	assert.ErrorIs(t, err, messaging.ErrNotFound)
}

func TestSendMessageUnknownConversation(t *testing.T) {
	uc, _, _, _ := sendFixture(t, true)

	_, err := uc.Execute(context.Background(), SendMessageInput{
		RequesterID:    "alice",
		ConversationID: "nope",
		Content:        "hi",
	})
	assert.ErrorIs(t, err, messaging.ErrNotFound)
}
