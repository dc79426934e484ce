package task

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qport "github.com/zennajjames/TheVillage/internal/infrastructure/queue/port"
	"github.com/zennajjames/TheVillage/internal/pkg/notification/mailer"
)

type captureServer struct {
	handlers map[string]qport.Handler
}

func (s *captureServer) Register(taskType string, h qport.Handler) {
	if s.handlers == nil {
		s.handlers = make(map[string]qport.Handler)
	}
	s.handlers[taskType] = h
}

func (s *captureServer) Run(context.Context) error  { return nil }
func (s *captureServer) Stop(context.Context) error { return nil }

func TestRegisterBindsTaskType(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	srv := &captureServer{}

	RegisterNewMessageEmailTask(srv, mailer.NewMailer(mailer.Config{}), log)

	require.Contains(t, srv.handlers, NewMessageEmailTaskType)
}

func TestMalformedPayloadIsDroppedWithoutRetry(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	srv := &captureServer{}
	RegisterNewMessageEmailTask(srv, mailer.NewMailer(mailer.Config{}), log)

	h := srv.handlers[NewMessageEmailTaskType]
	err := h(context.Background(), qport.Task{Type: NewMessageEmailTaskType, Payload: []byte("{broken")})
	assert.NoError(t, err, "a payload that can never be delivered must not be retried")
}
