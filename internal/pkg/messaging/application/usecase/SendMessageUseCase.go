package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	directory "github.com/zennajjames/TheVillage/internal/pkg/directory/port"
	messaging "github.com/zennajjames/TheVillage/internal/pkg/messaging/application/domain"
	repository "github.com/zennajjames/TheVillage/internal/pkg/messaging/persistence/repository/port"
	notification "github.com/zennajjames/TheVillage/internal/pkg/notification/port"
)

const notificationPreviewRunes = 100

// SendMessageInput carries the data needed to send a new message.
type SendMessageInput struct {
	RequesterID    string
	ConversationID string
	Content        string
}

// SendMessageUseCase appends a message, touches the conversation's
// last-activity timestamp, and fans out an email notification to the other
// participant if their preferences allow it. Notification dispatch is
// fire-and-forget: failures are logged and never reach the caller.
type SendMessageUseCase struct {
	Conversations repository.ConversationRepository
	Messages      repository.MessageRepository
	Directory     directory.Directory
	Dispatcher    notification.Dispatcher
	Log           *logrus.Logger

	// DispatchTimeout bounds the background notification work.
	DispatchTimeout time.Duration
}

func NewSendMessageUseCase(
	conversations repository.ConversationRepository,
	messages repository.MessageRepository,
	dir directory.Directory,
	dispatcher notification.Dispatcher,
	log *logrus.Logger,
) *SendMessageUseCase {
	return &SendMessageUseCase{
		Conversations:   conversations,
		Messages:        messages,
		Directory:       dir,
		Dispatcher:      dispatcher,
		Log:             log,
		DispatchTimeout: 10 * time.Second,
	}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*MessageView, error) {
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
	recipientID := conv.OtherParticipant(in.RequesterID)
	if recipientID == "" {
		return nil, messaging.ErrNotFound
	}

	msg, err := messaging.NewMessage(in.ConversationID, in.RequesterID, in.Content)
	if err != nil {
		return nil, err
	}

	stored, err := uc.Messages.Append(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := uc.Conversations.Touch(ctx, in.ConversationID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	view := &MessageView{Message: *stored}
	sender, err := uc.Directory.GetUser(ctx, in.RequesterID)
	if err == nil {
		view.Sender = sender
	} else if uc.Log != nil {
		uc.Log.WithError(err).WithField("user_id", in.RequesterID).Warn("sender profile lookup failed")
	}

	go uc.notifyRecipient(recipientID, sender, *stored)

	return view, nil
}

// notifyRecipient runs detached from the request: by the time it executes the
// message is durable and the HTTP response may already be on the wire.
func (uc *SendMessageUseCase) notifyRecipient(recipientID string, sender *directory.User, msg messaging.Message) {
	if uc.Dispatcher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), uc.DispatchTimeout)
	defer cancel()

	recipient, err := uc.Directory.GetUser(ctx, recipientID)
	if err != nil {
		uc.logWarn(err, msg.ConversationID, "recipient profile lookup failed")
		return
	}
	if !recipient.EmailNotifications || !recipient.NotifyOnMessages {
		return
	}

	fromName := "A community member"
	if sender != nil {
		fromName = sender.FullName()
	}
	err = uc.Dispatcher.DispatchNewMessage(ctx, notification.NewMessageNotification{
		ToEmail:        recipient.Email,
		ToName:         recipient.FirstName,
		FromName:       fromName,
		Preview:        msg.Preview(notificationPreviewRunes),
		ConversationID: msg.ConversationID,
	})
	if err != nil {
		uc.logWarn(err, msg.ConversationID, "new message notification dispatch failed")
	}
}

func (uc *SendMessageUseCase) logWarn(err error, conversationID, text string) {
	if uc.Log == nil {
		return
	}
	uc.Log.WithError(err).WithField("conversation", conversationID).Warn(text)
}
