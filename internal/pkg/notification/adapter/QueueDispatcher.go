package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	qport "github.com/zennajjames/TheVillage/internal/infrastructure/queue/port"
	notification "github.com/zennajjames/TheVillage/internal/pkg/notification/port"
	"github.com/zennajjames/TheVillage/internal/pkg/notification/task"
)

// QueueDispatcher satisfies the Dispatcher port by enqueueing a background
// task; the worker binary does the actual SMTP delivery.
type QueueDispatcher struct {
	client qport.Client
}

func NewQueueDispatcher(client qport.Client) *QueueDispatcher {
	return &QueueDispatcher{client: client}
}

// Ensure interface compliance at compile time
var _ notification.Dispatcher = (*QueueDispatcher)(nil)

func (d *QueueDispatcher) DispatchNewMessage(ctx context.Context, n notification.NewMessageNotification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("notification: encode payload: %w", err)
	}
	_, err = d.client.Enqueue(ctx, qport.Task{
		Type:    task.NewMessageEmailTaskType,
		Payload: payload,
	}, qport.EnqueueOption{Queue: "notifications", MaxRetry: 5})
	return err
}
