// Package services – ContactService
//
// ContactService runs the contact form pipeline:
//
//	Received -> Validated -> Persisted -> NotificationAttempted
//
// Field rules are checked first, then human verification. A request that
// fails either is rejected without touching the database. The submission
// insert is the commit point; the notification email that follows is best
// effort and its failure never changes the caller's result.
//
// A request carrying an Idempotency-Key that was already accepted is
// answered as a success without inserting or notifying again.
package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-domain-finder/internal/domain"
	"github.com/tbourn/go-domain-finder/internal/mailer"
	"github.com/tbourn/go-domain-finder/internal/repo"
)

// ContactScope namespaces contact form idempotency keys.
const ContactScope = "contact"

// Field error messages shown next to the form inputs.
const (
	msgRequired     = "This field is required."
	msgNameShort    = "Name must be at least 2 characters long."
	msgMessageShort = "Message must be at least 10 characters long."
	msgEmail        = "Enter a valid email address."
	msgCaptcha      = "Human verification failed. Please try again."
)

// CaptchaVerifier checks a human-verification token.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// Notifier delivers the notification email. creds is nil when the active
// contact configuration has no SMTP account.
type Notifier interface {
	Send(ctx context.Context, creds *mailer.Credentials, m mailer.Message) error
}

// ContactInput is one form submission as received.
type ContactInput struct {
	Name           string
	Email          string
	Message        string
	CaptchaToken   string
	RemoteIP       string
	IdempotencyKey string
}

// ContactResult reports the stored submission. Replayed is true when the
// submission was accepted by an earlier request with the same key.
type ContactResult struct {
	Submission *domain.ContactSubmission
	Replayed   bool
}

// ContactService accepts contact form submissions.
type ContactService struct {
	DB *gorm.DB

	// Captcha is optional; nil disables human verification.
	Captcha CaptchaVerifier
	// Notifier is optional; nil disables notification.
	Notifier Notifier

	IdempotencyTTL time.Duration
	NotifyTimeout  time.Duration
}

type contactFields struct {
	Name    string `json:"name"    validate:"required,min=2,max=100"`
	Email   string `json:"email"   validate:"required,email,max=254"`
	Message string `json:"message" validate:"required,min=10"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateContact applies the field rules to trimmed input. It returns nil
// or a *ValidationError.
func validateContact(in ContactInput) error {
	err := validate.Struct(contactFields{Name: in.Name, Email: in.Email, Message: in.Message})
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	verr := &ValidationError{}
	for _, fe := range ves {
		verr.add(fe.Field(), fieldMessage(fe))
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "email":
		return msgEmail
	case "min":
		if fe.Field() == "name" {
			return msgNameShort
		}
		return msgMessageShort
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	}
	return "Invalid value."
}

// Submit validates, verifies, persists and notifies. Errors are either a
// *ValidationError (nothing stored) or an internal failure.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*ContactResult, error) {
	tr := otel.Tracer("services/ContactService")
	ctx, span := tr.Start(ctx, "Submit",
		trace.WithAttributes(attribute.Bool("idempotency_key", in.IdempotencyKey != "")),
	)
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	in.IdempotencyKey = strings.TrimSpace(in.IdempotencyKey)

	if err := validateContact(in); err != nil {
		contactSubmissions.WithLabelValues(resultInvalid).Inc()
		return nil, err
	}

	// Replays are answered before verification: tokens are single-use.
	if res, err := s.lookupReplay(ctx, in.IdempotencyKey); err != nil || res != nil {
		if err != nil {
			contactSubmissions.WithLabelValues(resultError).Inc()
		}
		return res, err
	}

	if s.Captcha != nil {
		if err := s.Captcha.Verify(ctx, in.CaptchaToken, in.RemoteIP); err != nil {
			zerolog.Ctx(ctx).Info().Err(err).Msg("contact captcha rejected")
			contactSubmissions.WithLabelValues(resultCaptchaRejected).Inc()
			return nil, &ValidationError{Fields: map[string][]string{"captcha": {msgCaptcha}}}
		}
	}

	sub := &domain.ContactSubmission{Name: in.Name, Email: in.Email, Message: in.Message}
	raced := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.CreateSubmission(ctx, tx, sub); err != nil {
			return err
		}
		if in.IdempotencyKey == "" {
			return nil
		}
		_, err := repo.CreateIdempotency(ctx, tx, ContactScope, in.IdempotencyKey, sub.ID, 200, s.IdempotencyTTL)
		if errors.Is(err, repo.ErrDuplicate) {
			raced = true
		}
		return err
	})
	if raced {
		// A concurrent request with the same key won; ours was rolled back.
		if res, lerr := s.lookupReplay(ctx, in.IdempotencyKey); lerr == nil && res != nil {
			return res, nil
		}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist")
		contactSubmissions.WithLabelValues(resultError).Inc()
		return nil, err
	}
	contactSubmissions.WithLabelValues(resultAccepted).Inc()
	span.SetAttributes(attribute.String("submission.id", sub.ID))

	s.notify(ctx, sub)
	return &ContactResult{Submission: sub}, nil
}

// lookupReplay returns the earlier result for key, or (nil, nil) when there
// is none.
func (s *ContactService) lookupReplay(ctx context.Context, key string) (*ContactResult, error) {
	if key == "" {
		return nil, nil
	}
	rec, err := repo.GetIdempotency(ctx, s.DB, ContactScope, key, time.Now().UTC())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sub, err := repo.GetSubmission(ctx, s.DB, rec.SubmissionID)
	if err != nil {
		return nil, err
	}
	contactSubmissions.WithLabelValues(resultReplayed).Inc()
	return &ContactResult{Submission: sub, Replayed: true}, nil
}

// notify sends the notification email. Failures are logged and counted.
func (s *ContactService) notify(ctx context.Context, sub *domain.ContactSubmission) {
	if s.Notifier == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	if s.NotifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.NotifyTimeout)
		defer cancel()
	}
	lg := zerolog.Ctx(ctx)

	info, err := repo.ActiveContactInfo(ctx, s.DB)
	if err != nil {
		lg.Warn().Err(err).Msg("contact info lookup failed, using fallback mail channel")
		info = nil
	}

	var creds *mailer.Credentials
	outcome := outcomeFallback
	if info.HasSMTPCredentials() {
		creds = &mailer.Credentials{Email: info.SMTPEmail, Password: info.SMTPPassword}
		outcome = outcomeRelay
	}

	if err := s.Notifier.Send(ctx, creds, NotificationMessage(sub)); err != nil {
		lg.Error().Err(err).Str("submission_id", sub.ID).Str("channel", outcome).Msg("contact notification failed")
		contactNotifications.WithLabelValues(outcomeFailed).Inc()
		return
	}
	contactNotifications.WithLabelValues(outcome).Inc()
}

// NotificationMessage composes the email for a stored submission. Addressing
// is left to the Notifier.
func NotificationMessage(sub *domain.ContactSubmission) mailer.Message {
	body := fmt.Sprintf(
		"New contact form submission:\n\nName: %s\nEmail: %s\nMessage: %s\n\nSubmitted at: %s\n",
		sub.Name, sub.Email, sub.Message, sub.SubmittedAt.Format("2006-01-02 15:04:05 MST"),
	)
	return mailer.Message{
		ReplyTo: sub.Email,
		Subject: "New Contact Form Submission from " + sub.Name,
		Body:    body,
	}
}
