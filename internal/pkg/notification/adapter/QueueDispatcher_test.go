package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qport "github.com/zennajjames/TheVillage/internal/infrastructure/queue/port"
	notification "github.com/zennajjames/TheVillage/internal/pkg/notification/port"
	"github.com/zennajjames/TheVillage/internal/pkg/notification/task"
)

type captureClient struct {
	task qport.Task
	opts []qport.EnqueueOption
	err  error
}

func (c *captureClient) Enqueue(_ context.Context, t qport.Task, opts ...qport.EnqueueOption) (string, error) {
	c.task = t
	c.opts = opts
	return "task-1", c.err
}

func (c *captureClient) Close() error { return nil }

func TestDispatchNewMessageEnqueuesTask(t *testing.T) {
	client := &captureClient{}
	d := NewQueueDispatcher(client)

	n := notification.NewMessageNotification{
		ToEmail:        "bob@example.com",
		ToName:         "Bob",
		FromName:       "Alice A",
		Preview:        "hi bob",
		ConversationID: "c1",
	}
	require.NoError(t, d.DispatchNewMessage(context.Background(), n))

	assert.Equal(t, task.NewMessageEmailTaskType, client.task.Type)
	require.Len(t, client.opts, 1)
	assert.Equal(t, "notifications", client.opts[0].Queue)
	assert.Equal(t, 5, client.opts[0].MaxRetry)

	var decoded notification.NewMessageNotification
	require.NoError(t, json.Unmarshal(client.task.Payload, &decoded))
	assert.Equal(t, n, decoded)
}

func TestDispatchNewMessagePropagatesEnqueueFailure(t *testing.T) {
	client := &captureClient{err: errors.New("redis down")}
	d := NewQueueDispatcher(client)

	err := d.DispatchNewMessage(context.Background(), notification.NewMessageNotification{})
	assert.Error(t, err)
}
