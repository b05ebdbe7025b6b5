// Command server runs the Domain Finder website.
//
// @title           Domain Finder API
// @version         1.0
// @description     JSON endpoints of the Domain Finder site: the listing feed, the contact form and the back-office API.
// @BasePath        /
// @schemes         http https
//
// @securityDefinitions.basic  BasicAuth
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	_ "github.com/tbourn/go-domain-finder/docs"
	"github.com/tbourn/go-domain-finder/internal/captcha"
	"github.com/tbourn/go-domain-finder/internal/config"
	httpapi "github.com/tbourn/go-domain-finder/internal/http"
	"github.com/tbourn/go-domain-finder/internal/mailer"
	"github.com/tbourn/go-domain-finder/internal/observability"
	"github.com/tbourn/go-domain-finder/internal/repo"
	"github.com/tbourn/go-domain-finder/internal/services"
	"github.com/tbourn/go-domain-finder/internal/sysutil"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = ""

const (
	purgeEvery      = time.Hour
	shutdownTimeout = 15 * time.Second
)

func main() {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		sysutil.ConfigureLogging("info", true, nil)
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	sysutil.ConfigureLogging(cfg.LogLevel, cfg.LogPretty, nil)
	gin.SetMode(cfg.GinMode)

	appVersion := sysutil.FirstNonEmpty(version, os.Getenv("APP_VERSION"), "dev")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.OTEL, appVersion)
	if err != nil {
		log.Fatal().Err(err).Msg("tracing setup failed")
	}

	db, err := repo.OpenSQLite(cfg.DBPath, repo.Options{Tracing: cfg.OTEL.Enabled, Silent: cfg.GinMode == gin.ReleaseMode})
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.Migrate(db, cfg.SeedReference); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	deps := httpapi.Deps{Notifier: mailer.NewRouter(cfg.Mail, log.Logger)}
	if cfg.Recaptcha.SecretKey != "" {
		deps.Captcha = captcha.New(cfg.Recaptcha)
	} else {
		log.Warn().Msg("RECAPTCHA_SECRET_KEY not set, contact form runs without captcha")
	}

	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("trusted proxies")
	}
	if err := httpapi.RegisterRoutes(r, db, deps, cfg); err != nil {
		log.Fatal().Err(err).Msg("register routes")
	}

	go purgeIdempotencyKeys(ctx, &services.AdminService{DB: db})

	srv := newHTTPServer(cfg, r)

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", appVersion).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	stop()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := shutdownTracing(sctx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// newHTTPServer builds the listener config. Request contexts derive from
// the server's own background context, so a shutdown signal lets in-flight
// requests finish within shutdownTimeout instead of cancelling them.
func newHTTPServer(cfg config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           h,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}
}

// purgeIdempotencyKeys drops expired contact idempotency records hourly
// until ctx ends.
func purgeIdempotencyKeys(ctx context.Context, admin *services.AdminService) {
	t := time.NewTicker(purgeEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := admin.PurgeExpiredKeys(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("purge idempotency keys")
				continue
			}
			if n > 0 {
				log.Debug().Int64("removed", n).Msg("purged idempotency keys")
			}
		}
	}
}
