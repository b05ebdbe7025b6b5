// Package captcha verifies reCAPTCHA v3 tokens against the siteverify
// endpoint. A token passes when Google reports success, the action matches
// the one the page requested, and the score reaches the configured threshold.
package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tbourn/go-domain-finder/internal/config"
)

var (
	// ErrMissingToken is returned when the client sent no token.
	ErrMissingToken = errors.New("captcha token missing")
	// ErrRejected is returned when siteverify did not vouch for the token.
	ErrRejected = errors.New("captcha rejected")
)

// Verifier calls the reCAPTCHA siteverify API.
type Verifier struct {
	Secret    string
	Action    string
	Threshold float64
	URL       string
	Client    *http.Client
}

// New builds a Verifier from configuration.
func New(cfg config.RecaptchaConfig) *Verifier {
	return &Verifier{
		Secret:    cfg.SecretKey,
		Action:    cfg.Action,
		Threshold: cfg.ScoreThreshold,
		URL:       cfg.VerifyURL,
		Client:    &http.Client{Timeout: cfg.Timeout},
	}
}

type siteverifyResponse struct {
	Success     bool      `json:"success"`
	Score       float64   `json:"score"`
	Action      string    `json:"action"`
	ChallengeTS time.Time `json:"challenge_ts"`
	Hostname    string    `json:"hostname"`
	ErrorCodes  []string  `json:"error-codes"`
}

// Verify checks token. remoteIP is optional. Transport and decoding failures
// are returned as-is; a negative verdict wraps ErrRejected.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrMissingToken
	}

	form := url.Values{}
	form.Set("secret", v.Secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := v.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("siteverify: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("siteverify: unexpected status %d", resp.StatusCode)
	}

	var out siteverifyResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&out); err != nil {
		return fmt.Errorf("siteverify: decode: %w", err)
	}

	switch {
	case !out.Success:
		return fmt.Errorf("%w: %s", ErrRejected, strings.Join(out.ErrorCodes, ","))
	case v.Action != "" && out.Action != v.Action:
		return fmt.Errorf("%w: action %q", ErrRejected, out.Action)
	case out.Score < v.Threshold:
		return fmt.Errorf("%w: score %.2f below %.2f", ErrRejected, out.Score, v.Threshold)
	}
	return nil
}
