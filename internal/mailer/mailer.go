// Package mailer delivers plain-text notification emails. SMTPSender talks to
// a relay through go-mail, LogSender writes the message to the log instead,
// and Router picks between an authenticated relay and the fallback channel.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"
)

// ErrNoRecipient is returned for a Message without a To address.
var ErrNoRecipient = errors.New("mailer: no recipient")

// Message is a single plain-text email.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Sender delivers a Message.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// SMTPSender sends through an SMTP server. When Username is empty no
// authentication is attempted and TLS is used opportunistically.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// dialAndSend is replaced in tests.
var dialAndSend = func(ctx context.Context, c *gomail.Client, msgs ...*gomail.Msg) error {
	return c.DialAndSendWithContext(ctx, msgs...)
}

// Send implements Sender.
func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	msg, err := buildMsg(m)
	if err != nil {
		return err
	}

	opts := []gomail.Option{gomail.WithPort(s.Port)}
	if s.Timeout > 0 {
		opts = append(opts, gomail.WithTimeout(s.Timeout))
	}
	if s.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.Username),
			gomail.WithPassword(s.Password),
			gomail.WithTLSPolicy(gomail.TLSMandatory),
		)
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(s.Host, opts...)
	if err != nil {
		return fmt.Errorf("mailer: client: %w", err)
	}
	if err := dialAndSend(ctx, client, msg); err != nil {
		return fmt.Errorf("mailer: send via %s:%d: %w", s.Host, s.Port, err)
	}
	return nil
}

func buildMsg(m Message) (*gomail.Msg, error) {
	if m.To == "" {
		return nil, ErrNoRecipient
	}
	msg := gomail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return nil, fmt.Errorf("mailer: from: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("mailer: to: %w", err)
	}
	if m.ReplyTo != "" {
		if err := msg.ReplyTo(m.ReplyTo); err != nil {
			return nil, fmt.Errorf("mailer: reply-to: %w", err)
		}
	}
	msg.Subject(m.Subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(gomail.TypeTextPlain, m.Body)
	return msg, nil
}

// LogSender records messages in the log. It is the fallback channel when no
// SMTP relay is configured.
type LogSender struct {
	Log zerolog.Logger
}

// Send implements Sender.
func (l LogSender) Send(_ context.Context, m Message) error {
	if m.To == "" {
		return ErrNoRecipient
	}
	l.Log.Info().
		Str("from", m.From).
		Str("to", m.To).
		Str("subject", m.Subject).
		Int("body_bytes", len(m.Body)).
		Msg("mail")
	return nil
}
