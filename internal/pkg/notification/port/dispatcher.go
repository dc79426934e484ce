package notification

import "context"

// NewMessageNotification is everything the email fan-out needs, resolved at
// dispatch time so the worker never has to reach back into the directory.
type NewMessageNotification struct {
	ToEmail        string `json:"toEmail"`
	ToName         string `json:"toName"`
	FromName       string `json:"fromName"`
	Preview        string `json:"preview"`
	ConversationID string `json:"conversationId"`
}

// Dispatcher hands a notification off for asynchronous delivery. Callers
// treat it as fire-and-forget: a dispatch failure is logged, never surfaced,
// and never affects persisted state.
type Dispatcher interface {
	DispatchNewMessage(ctx context.Context, n NewMessageNotification) error
}
