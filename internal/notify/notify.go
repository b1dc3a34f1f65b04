// Package notify renders and sends the contact-form e-mails: a notice to the
// site administrator and a confirmation to the client.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/silis/backend/internal/apperr"
	"github.com/silis/backend/internal/config"
	"github.com/silis/backend/internal/model"
)

// Message is an outgoing e-mail with plain-text and HTML alternatives.
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

// Transport delivers a rendered message.
type Transport interface {
	Send(ctx context.Context, msg *Message) error
}

// Notifier sends the e-mails that follow a stored submission.
type Notifier interface {
	NotifyAdmin(ctx context.Context, s *model.ContactSubmission) error
	ConfirmClient(ctx context.Context, s *model.ContactSubmission) error
}

// Mailer is the Notifier used by the server.
type Mailer struct {
	transport Transport
	from      string
	adminTo   string
	timeout   time.Duration
}

// NewMailer creates a Mailer. timeout bounds each send; zero disables it.
func NewMailer(t Transport, from, adminTo string, timeout time.Duration) *Mailer {
	return &Mailer{transport: t, from: from, adminTo: adminTo, timeout: timeout}
}

var _ Notifier = (*Mailer)(nil)

// NewTransport picks the transport named in cfg.
func NewTransport(cfg config.MailConfig) (Transport, error) {
	switch cfg.Transport {
	case config.TransportSMTP:
		return NewSMTPTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword), nil
	case config.TransportHTTP:
		return NewHTTPTransport(cfg.APIURL, cfg.APIKey, cfg.Timeout), nil
	case config.TransportLog, "":
		return LogTransport{}, nil
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.Transport)
	}
}

// NotifyAdmin tells the administrator about a new submission.
func (m *Mailer) NotifyAdmin(ctx context.Context, s *model.ContactSubmission) error {
	msg, err := RenderAdminNotice(s)
	if err != nil {
		return &apperr.NotificationError{Kind: "admin", Err: err}
	}
	msg.From = m.from
	msg.To = m.adminTo
	return m.send(ctx, "admin", msg)
}

// ConfirmClient thanks the client for their submission.
func (m *Mailer) ConfirmClient(ctx context.Context, s *model.ContactSubmission) error {
	msg, err := RenderClientConfirmation(s)
	if err != nil {
		return &apperr.NotificationError{Kind: "client", Err: err}
	}
	msg.From = m.from
	msg.To = s.Email
	return m.send(ctx, "client", msg)
}

func (m *Mailer) send(ctx context.Context, kind string, msg *Message) error {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	if err := m.transport.Send(ctx, msg); err != nil {
		return &apperr.NotificationError{Kind: kind, Err: err}
	}
	return nil
}

// LogTransport only logs what would have been sent. It is used when no
// mail server is configured.
type LogTransport struct{}

func (LogTransport) Send(ctx context.Context, msg *Message) error {
	slog.InfoContext(ctx, "mail transport not configured, e-mail would be sent",
		"subject", msg.Subject,
		"to", msg.To,
	)
	return nil
}
