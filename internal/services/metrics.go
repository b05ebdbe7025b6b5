package services

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels for the contact pipeline counters.
const (
	resultAccepted        = "accepted"
	resultReplayed        = "replayed"
	resultInvalid         = "invalid"
	resultCaptchaRejected = "captcha_rejected"
	resultError           = "error"

	outcomeRelay    = "relay"
	outcomeFallback = "fallback"
	outcomeFailed   = "failed"
)

var (
	// contactSubmissions counts contact form submissions by result.
	contactSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Contact form submissions by result.",
		},
		[]string{"result"},
	)

	// contactNotifications counts notification attempts by delivery outcome.
	contactNotifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_notifications_total",
			Help: "Contact notification emails by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(contactSubmissions, contactNotifications)
}
