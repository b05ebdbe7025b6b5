// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, database paths, rate limiting, outbound
// mail, human verification and observability.
package config

import (
	"errors"
	"net/mail"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS and CSP.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
	// CSP is sent on every response when non-empty.
	CSP string
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "domain-finder")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// RecaptchaConfig holds reCAPTCHA v3 settings. An empty SecretKey disables
// verification.
type RecaptchaConfig struct {
	SiteKey        string
	SecretKey      string
	Action         string
	ScoreThreshold float64
	VerifyURL      string
	Timeout        time.Duration
}

// MailConfig describes outbound notification mail.
//
// RelayHost/RelayPort are used when the active contact configuration carries
// SMTP credentials. Otherwise messages go from DefaultFrom to DefaultTo over
// the fallback relay, or to the log when FallbackHost is empty.
type MailConfig struct {
	RelayHost    string
	RelayPort    int
	FromName     string
	DefaultFrom  string
	DefaultTo    string
	FallbackHost string
	FallbackPort int
	Timeout      time.Duration
}

// AdminConfig guards the admin JSON surface with HTTP basic auth.
// The surface is disabled when Password is empty.
type AdminConfig struct {
	User     string
	Password string
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	MaxBodyBytes      int64         // request body cap
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route

	// App
	DBPath        string // SQLite path
	ListingPage   int    // first-render page size of the domains listing
	SeedReference bool   // run reference-data migrations on boot

	// Rate limiting
	RateRPS          float64 // tokens per second (>= 0)
	RateBurst        int     // bucket size (>= 1)
	ContactRateRPS   float64 // contact submissions per second per client
	ContactRateBurst int

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Idempotency
	IdempotencyTTL time.Duration // how long a given Idempotency-Key is valid

	Recaptcha RecaptchaConfig
	Mail      MailConfig
	Admin     AdminConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		MaxBodyBytes:      int64(getint("MAX_BODY_BYTES", 64<<10)),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),

		// App
		DBPath:        getenv("DB_PATH", "domainfinder.db"),
		ListingPage:   getint("LISTING_PAGE_SIZE", 6),
		SeedReference: getbool("SEED_REFERENCE_DATA", true),

		// Rate limiting
		RateRPS:          getfloat("RATE_RPS", 5.0),
		RateBurst:        getint("RATE_BURST", 20),
		ContactRateRPS:   getfloat("CONTACT_RATE_RPS", 0.2),
		ContactRateBurst: getint("CONTACT_RATE_BURST", 3),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
			CSP:        getenv("CONTENT_SECURITY_POLICY", ""),
		},

		// Idempotency
		IdempotencyTTL: getdur("IDEMPOTENCY_TTL", 24*time.Hour),

		Recaptcha: RecaptchaConfig{
			SiteKey:        getenv("RECAPTCHA_SITE_KEY", ""),
			SecretKey:      getenv("RECAPTCHA_SECRET_KEY", ""),
			Action:         getenv("RECAPTCHA_ACTION", "submit"),
			ScoreThreshold: getfloat("RECAPTCHA_SCORE_THRESHOLD", 0.5),
			VerifyURL:      getenv("RECAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify"),
			Timeout:        getdur("RECAPTCHA_TIMEOUT", 5*time.Second),
		},

		Mail: MailConfig{
			RelayHost:    getenv("SMTP_HOST", "smtp.gmail.com"),
			RelayPort:    getint("SMTP_PORT", 587),
			FromName:     getenv("MAIL_FROM_NAME", "Domain Finder"),
			DefaultFrom:  getenv("MAIL_DEFAULT_FROM", "noreply@domainfinder.com"),
			DefaultTo:    getenv("MAIL_DEFAULT_TO", "admin@domainfinder.com"),
			FallbackHost: getenv("MAIL_FALLBACK_HOST", ""),
			FallbackPort: getint("MAIL_FALLBACK_PORT", 25),
			Timeout:      getdur("MAIL_TIMEOUT", 10*time.Second),
		},

		Admin: AdminConfig{
			User:     getenv("ADMIN_USER", "admin"),
			Password: getenv("ADMIN_PASSWORD", ""),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "domain-finder"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}
	cfg.Mail.RelayHost = strings.TrimSpace(cfg.Mail.RelayHost)
	cfg.Mail.FallbackHost = strings.TrimSpace(cfg.Mail.FallbackHost)

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if cfg.MaxBodyBytes <= 0 {
		return cfg, errors.New("MAX_BODY_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if cfg.ListingPage < 1 {
		return cfg, errors.New("LISTING_PAGE_SIZE must be >= 1")
	}
	if cfg.RateRPS < 0 || cfg.ContactRateRPS < 0 {
		return cfg, errors.New("RATE_RPS and CONTACT_RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 || cfg.ContactRateBurst < 1 {
		return cfg, errors.New("RATE_BURST and CONTACT_RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.IdempotencyTTL <= 0 {
		return cfg, errors.New("IDEMPOTENCY_TTL must be > 0")
	}
	if cfg.Recaptcha.ScoreThreshold < 0 || cfg.Recaptcha.ScoreThreshold > 1 {
		return cfg, errors.New("RECAPTCHA_SCORE_THRESHOLD must be in [0,1]")
	}
	if cfg.Recaptcha.Timeout <= 0 || cfg.Mail.Timeout <= 0 {
		return cfg, errors.New("RECAPTCHA_TIMEOUT and MAIL_TIMEOUT must be > 0")
	}
	if cfg.Recaptcha.SecretKey != "" && strings.TrimSpace(cfg.Recaptcha.VerifyURL) == "" {
		return cfg, errors.New("RECAPTCHA_VERIFY_URL must not be empty when a secret is set")
	}
	if cfg.Mail.RelayHost == "" {
		return cfg, errors.New("SMTP_HOST must not be empty")
	}
	if !validPort(cfg.Mail.RelayPort) || !validPort(cfg.Mail.FallbackPort) {
		return cfg, errors.New("SMTP_PORT and MAIL_FALLBACK_PORT must be in [1,65535]")
	}
	if _, err := mail.ParseAddress(cfg.Mail.DefaultFrom); err != nil {
		return cfg, errors.New("MAIL_DEFAULT_FROM must be a valid address")
	}
	if _, err := mail.ParseAddress(cfg.Mail.DefaultTo); err != nil {
		return cfg, errors.New("MAIL_DEFAULT_TO must be a valid address")
	}
	if cfg.Admin.Password != "" && strings.TrimSpace(cfg.Admin.User) == "" {
		return cfg, errors.New("ADMIN_USER must not be empty when ADMIN_PASSWORD is set")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func validPort(p int) bool { return p > 0 && p <= 65535 }
