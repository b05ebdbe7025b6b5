package mailer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tbourn/go-domain-finder/internal/config"
)

// Credentials authenticate against the relay. The account address is also
// the sender and the recipient of the notification.
type Credentials struct {
	Email    string
	Password string
}

// Router chooses the delivery channel for a notification.
//
// With Credentials the message goes from "FromName <email>" to that same
// address over the authenticated relay. Without them it goes from
// DefaultFrom to DefaultTo over Fallback.
type Router struct {
	FromName    string
	DefaultFrom string
	DefaultTo   string

	// NewRelay builds the authenticated sender for a credential pair.
	NewRelay func(c Credentials) Sender
	Fallback Sender
}

// NewRouter wires a Router from configuration. The fallback is an
// unauthenticated SMTP sender when MAIL_FALLBACK_HOST is set, otherwise the log.
func NewRouter(cfg config.MailConfig, log zerolog.Logger) *Router {
	var fallback Sender = LogSender{Log: log}
	if cfg.FallbackHost != "" {
		fallback = &SMTPSender{Host: cfg.FallbackHost, Port: cfg.FallbackPort, Timeout: cfg.Timeout}
	}
	return &Router{
		FromName:    cfg.FromName,
		DefaultFrom: cfg.DefaultFrom,
		DefaultTo:   cfg.DefaultTo,
		NewRelay: func(c Credentials) Sender {
			return &SMTPSender{
				Host:     cfg.RelayHost,
				Port:     cfg.RelayPort,
				Username: c.Email,
				Password: c.Password,
				Timeout:  cfg.Timeout,
			}
		},
		Fallback: fallback,
	}
}

// Send addresses m and delivers it. From and To on m are overwritten.
func (r *Router) Send(ctx context.Context, creds *Credentials, m Message) error {
	if creds != nil && creds.Email != "" && creds.Password != "" && r.NewRelay != nil {
		m.From = r.FromName + " <" + creds.Email + ">"
		if r.FromName == "" {
			m.From = creds.Email
		}
		m.To = creds.Email
		return r.NewRelay(*creds).Send(ctx, m)
	}
	if r.Fallback == nil {
		return fmt.Errorf("mailer: no fallback channel")
	}
	m.From, m.To = r.DefaultFrom, r.DefaultTo
	return r.Fallback.Send(ctx, m)
}
