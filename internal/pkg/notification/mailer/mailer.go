package mailer

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	notification "github.com/zennajjames/TheVillage/internal/pkg/notification/port"
)

// Config holds the SMTP transport settings plus the client base URL used to
// build deep links into the web app.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	ClientURL string
}

// Mailer delivers notification emails over SMTP.
type Mailer struct {
	cfg Config
}

func NewMailer(cfg Config) *Mailer {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &Mailer{cfg: cfg}
}

// SendNewMessageNotification renders and sends the new-message email.
// Safe to call repeatedly for the same notification; the worst case of a
// queue redelivery is a duplicate email.
func (m *Mailer) SendNewMessageNotification(ctx context.Context, n notification.NewMessageNotification) error {
	body, err := renderNewMessageEmail(n, m.cfg.ClientURL)
	if err != nil {
		return fmt.Errorf("mailer: render: %w", err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", n.ToEmail)
	fmt.Fprintf(&msg, "Subject: New message from %s - The Village\r\n", n.FromName)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.Write(body)

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{n.ToEmail}, msg.Bytes()); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}
