package task

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	qport "github.com/zennajjames/TheVillage/internal/infrastructure/queue/port"
	"github.com/zennajjames/TheVillage/internal/pkg/notification/mailer"
	notification "github.com/zennajjames/TheVillage/internal/pkg/notification/port"
)

// NewMessageEmailTaskType is the queue task name for new-message email
// notifications.
const NewMessageEmailTaskType = "notification:new_message"

// RegisterNewMessageEmailTask binds the email delivery handler to the worker
// server. Handler errors signal the queue to retry per adapter policy, so the
// mailer must tolerate redelivery.
func RegisterNewMessageEmailTask(srv qport.Server, m *mailer.Mailer, log *logrus.Logger) {
	srv.Register(NewMessageEmailTaskType, func(ctx context.Context, t qport.Task) error {
		var n notification.NewMessageNotification
		if err := json.Unmarshal(t.Payload, &n); err != nil {
			// Malformed payloads will never become deliverable; drop them.
			log.WithError(err).Error("discarding malformed notification payload")
			return nil
		}

		if err := m.SendNewMessageNotification(ctx, n); err != nil {
			log.WithError(err).WithFields(logrus.Fields{
				"to":           n.ToEmail,
				"conversation": n.ConversationID,
			}).Warn("new message email delivery failed")
			return err
		}
		log.WithField("to", n.ToEmail).Debug("new message email sent")
		return nil
	})
}
