package port

import (
	"context"
	"time"
)

// Task represents a background job with a stable type identifier and an
// opaque payload. Payload encoding is up to callers.
type Task struct {
	Type    string
	Payload []byte
}

// Handler processes a Task. A non-nil error signals retry per adapter policy,
// so handlers must be idempotent.
type Handler func(ctx context.Context, task Task) error

// EnqueueOption controls enqueue behavior. Zero values mean "unspecified".
type EnqueueOption struct {
	Queue     string        // logical queue name
	ProcessIn time.Duration // delay before processing
	MaxRetry  int           // max retries for the task
}

// Client enqueues tasks for background processing.
type Client interface {
	Enqueue(ctx context.Context, t Task, opts ...EnqueueOption) (id string, err error)
	Close() error
}

// Server runs background workers that handle tasks. Run blocks until the
// context is canceled.
type Server interface {
	Register(taskType string, h Handler)
	Run(ctx context.Context) error
	Stop(ctx context.Context) error
}
