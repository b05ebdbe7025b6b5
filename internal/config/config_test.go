package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

func TestMustLoad_Success_NoPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("MustLoad should not panic on valid defaults, got: %v", r)
		}
	}()
	cfg := MustLoad()
	if cfg.DBPath == "" {
		t.Fatalf("unexpected empty config from MustLoad")
	}
}

// --- Load defaults ---

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DBPath != "domainfinder.db" || cfg.ListingPage != 6 || !cfg.SeedReference {
		t.Fatalf("app defaults unexpected: %+v", cfg)
	}
	if cfg.Recaptcha.Action != "submit" || cfg.Recaptcha.ScoreThreshold != 0.5 || cfg.Recaptcha.SecretKey != "" {
		t.Fatalf("recaptcha defaults unexpected: %+v", cfg.Recaptcha)
	}
	m := cfg.Mail
	if m.RelayHost != "smtp.gmail.com" || m.RelayPort != 587 || m.FromName != "Domain Finder" {
		t.Fatalf("mail relay defaults unexpected: %+v", m)
	}
	if m.DefaultFrom != "noreply@domainfinder.com" || m.DefaultTo != "admin@domainfinder.com" || m.FallbackHost != "" {
		t.Fatalf("mail fallback defaults unexpected: %+v", m)
	}
	if cfg.Admin.Password != "" || cfg.Admin.User != "admin" {
		t.Fatalf("admin defaults unexpected: %+v", cfg.Admin)
	}
	if cfg.OTEL.ServiceName != "domain-finder" {
		t.Fatalf("otel service default unexpected: %q", cfg.OTEL.ServiceName)
	}
}

// --- Load success + normalization + parsing ---

func TestLoad_Success_DefaultsAndOverrides(t *testing.T) {
	// Server timeouts / sizes (valid)
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("MAX_BODY_BYTES", "2048")
	t.Setenv("GIN_MODE", "weird") // will normalize to "release"

	// Logging / Docs
	t.Setenv("LOG_LEVEL", "warning") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("SWAGGER_ENABLED", "on")

	// App
	t.Setenv("DB_PATH", "db.sqlite")
	t.Setenv("LISTING_PAGE_SIZE", "9")
	t.Setenv("SEED_REFERENCE_DATA", "off")

	// Rate limiting (use invalids for parse to fall back to defaults)
	t.Setenv("RATE_RPS", "x")      // -> default 5.0
	t.Setenv("RATE_BURST", "nope") // -> default 20
	t.Setenv("CONTACT_RATE_RPS", "1")
	t.Setenv("CONTACT_RATE_BURST", "2")

	// Web protection
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")
	t.Setenv("CONTENT_SECURITY_POLICY", "default-src 'self'")

	t.Setenv("IDEMPOTENCY_TTL", "48h")

	t.Setenv("RECAPTCHA_SITE_KEY", "site")
	t.Setenv("RECAPTCHA_SECRET_KEY", "secret")
	t.Setenv("RECAPTCHA_ACTION", "contact")
	t.Setenv("RECAPTCHA_SCORE_THRESHOLD", "0.7")
	t.Setenv("RECAPTCHA_TIMEOUT", "2s")

	t.Setenv("SMTP_HOST", " mail.example.com ")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("MAIL_FROM_NAME", "Brokerage")
	t.Setenv("MAIL_DEFAULT_FROM", "from@example.com")
	t.Setenv("MAIL_DEFAULT_TO", "to@example.com")
	t.Setenv("MAIL_FALLBACK_HOST", "relay.local")
	t.Setenv("MAIL_FALLBACK_PORT", "26")
	t.Setenv("MAIL_TIMEOUT", "3s")

	t.Setenv("ADMIN_USER", "ops")
	t.Setenv("ADMIN_PASSWORD", "pw")

	// OTEL
	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_SERVICE_NAME", "svc")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "8088" ||
		cfg.ReadTimeout != 2*time.Second ||
		cfg.ReadHeaderTimeout != 1*time.Second ||
		cfg.WriteTimeout != 3*time.Second ||
		cfg.IdleTimeout != 4*time.Second ||
		cfg.MaxHeaderBytes != 8192 ||
		cfg.MaxBodyBytes != 2048 ||
		cfg.GinMode != "release" {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}
	if cfg.LogLevel != "warn" || !cfg.LogPretty || !cfg.SwaggerEnabled {
		t.Fatalf("logging/docs unexpected: %+v", cfg)
	}
	if cfg.DBPath != "db.sqlite" || cfg.ListingPage != 9 || cfg.SeedReference {
		t.Fatalf("app fields unexpected: %+v", cfg)
	}
	if cfg.RateRPS != 5.0 || cfg.RateBurst != 20 || cfg.ContactRateRPS != 1 || cfg.ContactRateBurst != 2 {
		t.Fatalf("rate limiting unexpected: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("cors origins unexpected: %#v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour || cfg.Security.CSP != "default-src 'self'" {
		t.Fatalf("security unexpected: %+v", cfg.Security)
	}
	if cfg.IdempotencyTTL != 48*time.Hour {
		t.Fatalf("idempotency ttl unexpected: %v", cfg.IdempotencyTTL)
	}
	r := cfg.Recaptcha
	if r.SiteKey != "site" || r.SecretKey != "secret" || r.Action != "contact" || r.ScoreThreshold != 0.7 || r.Timeout != 2*time.Second {
		t.Fatalf("recaptcha unexpected: %+v", r)
	}
	m := cfg.Mail
	if m.RelayHost != "mail.example.com" || m.RelayPort != 2525 || m.FromName != "Brokerage" ||
		m.DefaultFrom != "from@example.com" || m.DefaultTo != "to@example.com" ||
		m.FallbackHost != "relay.local" || m.FallbackPort != 26 || m.Timeout != 3*time.Second {
		t.Fatalf("mail unexpected: %+v", m)
	}
	if cfg.Admin.User != "ops" || cfg.Admin.Password != "pw" {
		t.Fatalf("admin unexpected: %+v", cfg.Admin)
	}
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure || cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("otel unexpected: %+v", cfg.OTEL)
	}
}

// --- Load validations (each case triggers exactly one validation error) ---

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"invalid LOG_LEVEL", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"empty PORT via spaces", map[string]string{"PORT": "   "}, "PORT must not be empty"},
		{"non-positive timeouts", map[string]string{"READ_TIMEOUT": "0s"}, "timeouts must be positive"},
		{"max header bytes <= 0", map[string]string{"MAX_HEADER_BYTES": "0"}, "MAX_HEADER_BYTES"},
		{"max body bytes <= 0", map[string]string{"MAX_BODY_BYTES": "-1"}, "MAX_BODY_BYTES"},
		{"empty DB_PATH", map[string]string{"DB_PATH": "   "}, "DB_PATH must not be empty"},
		{"listing page < 1", map[string]string{"LISTING_PAGE_SIZE": "0"}, "LISTING_PAGE_SIZE"},
		{"rate rps negative", map[string]string{"RATE_RPS": "-1"}, "RATE_RPS"},
		{"contact rate rps negative", map[string]string{"CONTACT_RATE_RPS": "-0.5"}, "CONTACT_RATE_RPS"},
		{"rate burst < 1", map[string]string{"RATE_BURST": "0"}, "RATE_BURST"},
		{"hsts max age negative", map[string]string{"HSTS_MAX_AGE": "-1s"}, "HSTS_MAX_AGE"},
		{"idempotency ttl non-positive", map[string]string{"IDEMPOTENCY_TTL": "0s"}, "IDEMPOTENCY_TTL"},
		{"captcha threshold out of range", map[string]string{"RECAPTCHA_SCORE_THRESHOLD": "1.2"}, "RECAPTCHA_SCORE_THRESHOLD"},
		{"mail timeout non-positive", map[string]string{"MAIL_TIMEOUT": "0s"}, "MAIL_TIMEOUT"},
		{"smtp host blank", map[string]string{"SMTP_HOST": "  "}, "SMTP_HOST"},
		{"smtp port out of range", map[string]string{"SMTP_PORT": "70000"}, "SMTP_PORT"},
		{"default from invalid", map[string]string{"MAIL_DEFAULT_FROM": "nope"}, "MAIL_DEFAULT_FROM"},
		{"default to invalid", map[string]string{"MAIL_DEFAULT_TO": "a@"}, "MAIL_DEFAULT_TO"},
		{"admin user blank", map[string]string{"ADMIN_PASSWORD": "pw", "ADMIN_USER": " "}, "ADMIN_USER"},
		{"otel sample ratio out of range", map[string]string{"OTEL_TRACES_SAMPLER_ARG": "1.5"}, "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil || !containsErr(err, tc.want) {
				t.Fatalf("expected %s validation error, got: %v", tc.want, err)
			}
		})
	}
}

// --- helpers ---

func TestHelpers_getenv(t *testing.T) {
	t.Setenv("X_EMPTY", "")
	if getenv("X_EMPTY", "d") != "d" {
		t.Fatalf("getenv should fall back to default on empty var")
	}
	t.Setenv("X_SET", "val")
	if getenv("X_SET", "d") != "val" {
		t.Fatalf("getenv should read set value")
	}
}

func TestHelpers_getfloat_getint_getdur(t *testing.T) {
	t.Setenv("F_VALID", "3.14")
	if getfloat("F_VALID", 0) != 3.14 {
		t.Fatalf("getfloat parse failed")
	}
	t.Setenv("F_BAD", "nope")
	if getfloat("F_BAD", 1.23) != 1.23 {
		t.Fatalf("getfloat default on bad parse failed")
	}

	t.Setenv("I_VALID", "42")
	if getint("I_VALID", 0) != 42 {
		t.Fatalf("getint parse failed")
	}
	t.Setenv("I_BAD", "x")
	if getint("I_BAD", 7) != 7 {
		t.Fatalf("getint default on bad parse failed")
	}

	t.Setenv("D_VALID", "150ms")
	if getdur("D_VALID", time.Second) != 150*time.Millisecond {
		t.Fatalf("getdur parse failed")
	}
	t.Setenv("D_BAD", "zzz")
	if getdur("D_BAD", 2*time.Second) != 2*time.Second {
		t.Fatalf("getdur default on bad parse failed")
	}
}

func TestHelpers_getbool(t *testing.T) {
	trueVals := []string{"1", "true", "TRUE", " yes ", "Y", "on", "On"}
	for i, v := range trueVals {
		k := "B_T_" + keySuffix(i)
		t.Setenv(k, v)
		if !getbool(k, false) {
			t.Fatalf("getbool(%q) = false; want true", v)
		}
	}
	falseVals := []string{"0", "false", "FALSE", " no ", "N", "off", "Off"}
	for i, v := range falseVals {
		k := "B_F_" + keySuffix(i)
		t.Setenv(k, v)
		if getbool(k, true) {
			t.Fatalf("getbool(%q) = true; want false", v)
		}
	}
	t.Setenv("B_EMPTY", "")
	if !getbool("B_EMPTY", true) || getbool("B_EMPTY", false) {
		t.Fatalf("getbool default behavior unexpected")
	}
}

func TestHelpers_splitCSV_validPort(t *testing.T) {
	if out := splitCSV(""); out != nil {
		t.Fatalf("splitCSV empty should return nil")
	}
	want := []string{"a", "b", "c"}
	if got := splitCSV(" a, ,b ,  c  ,"); !reflect.DeepEqual(got, want) {
		t.Fatalf("splitCSV mismatch: got %#v want %#v", got, want)
	}
	for _, p := range []int{0, -1, 65536} {
		if validPort(p) {
			t.Fatalf("validPort(%d) should be false", p)
		}
	}
	if !validPort(587) {
		t.Fatalf("validPort(587) should be true")
	}
}

func keySuffix(i int) string { return string('a' + rune(i)) }

func TestMain(m *testing.M) {
	os.Unsetenv("PORT")
	os.Exit(m.Run())
}

// containsErr reports whether err's message contains the given substring.
func containsErr(err error, want string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), want)
}
