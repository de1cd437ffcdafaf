package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/campus-suite/records-portal/internal/config"
)

// Mailer delivers a single plain-text email to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

const fromDisplayName = "Academic Records"

// smtpMailer sends mail over SMTP. Each Send dials a fresh session and
// releases it on every exit path; there is no persistent connection pool.
type smtpMailer struct {
	client *mail.Client
	from   string
}

// NewSMTP builds the mailer from startup configuration.
func NewSMTP(cfg config.SMTPConfig) (Mailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &smtpMailer{client: client, from: cfg.From}, nil
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(fromDisplayName, m.from); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
