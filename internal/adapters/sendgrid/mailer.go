package sendgrid

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"certwatch/internal/application"
	"certwatch/internal/ports"
)

// Mailer implements ports.Mailer using the SendGrid API
type Mailer struct {
	apiKey     string
	senderName string
	sender     string
}

// Ensure Mailer implements the port
var _ ports.Mailer = (*Mailer)(nil)

// Option configures the Mailer
type Option func(*Mailer)

// WithSenderName sets the display name on the From header
func WithSenderName(name string) Option {
	return func(m *Mailer) {
		m.senderName = name
	}
}

// NewMailer creates a SendGrid mailer sending from the given address
func NewMailer(apiKey, sender string, opts ...Option) *Mailer {
	m := &Mailer{
		apiKey:     apiKey,
		senderName: "Crewing Department",
		sender:     sender,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send delivers one email. The plain-text body is mirrored as HTML with
// newlines converted to <br> for mail clients that prefer it.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if m.apiKey == "" {
		return fmt.Errorf("sendgrid API key: %w", application.ErrNotConfigured)
	}
	if m.sender == "" {
		return fmt.Errorf("sender email: %w", application.ErrNotConfigured)
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(m.senderName, m.sender),
		subject,
		mail.NewEmail("", to),
		body,
		htmlBody(body),
	)

	resp, err := sendgrid.NewSendClient(m.apiKey).SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid error: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid error: status %d - %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// htmlBody converts newlines to HTML breaks
func htmlBody(body string) string {
	return strings.ReplaceAll(body, "\n", "<br>")
}
