// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver), schema migration and reference-data seeding.
package repo

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/go-domain-finder/internal/domain"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Options tunes OpenSQLite.
type Options struct {
	// Tracing installs the OpenTelemetry GORM plugin. Query variables are
	// never recorded since contact rows carry personal data.
	Tracing bool
	// Silent disables the GORM statement logger.
	Silent bool
}

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
//
// PRAGMAs are passed through the DSN so every pooled connection enforces
// foreign keys, not only the first one.
func OpenSQLite(path string, opts ...Options) (*gorm.DB, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, "file:") {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	gcfg := &gorm.Config{}
	if o.Silent {
		gcfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(withPragmas(path)), gcfg)
	if err != nil {
		return nil, err
	}

	if o.Tracing {
		if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics(), tracing.WithoutQueryVariables())); err != nil {
			return nil, fmt.Errorf("gorm tracing: %w", err)
		}
	}

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

func withPragmas(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	pragmas := []string{"foreign_keys(1)", "busy_timeout(5000)", "synchronous(NORMAL)"}
	if !strings.Contains(path, "mode=memory") {
		pragmas = append(pragmas, "journal_mode(WAL)")
	}
	var b strings.Builder
	b.WriteString(path)
	for i, p := range pragmas {
		if i == 0 {
			b.WriteString(sep)
		} else {
			b.WriteString("&")
		}
		b.WriteString("_pragma=")
		b.WriteString(p)
	}
	return b.String()
}

// AutoMigrate creates or updates every table of the site.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Currency{},
		&domain.DomainStatus{},
		&domain.DomainListing{},
		&domain.ContactInfo{},
		&domain.ContactService{},
		&domain.ExpectationItem{},
		&domain.ContactSubmission{},
		&domain.HomePage{},
		&domain.BlogCategory{},
		&domain.Author{},
		&domain.BlogPost{},
		&domain.Idempotency{},
	)
}

// SeedReferenceData applies the embedded goose migrations that insert the
// baseline currencies and listing statuses. Tables must already exist.
// Re-running is a no-op.
func SeedReferenceData(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		return fmt.Errorf("setting dialect for migrations : %w", err)
	}
	if err := goose.Up(sqlDB, "migrations"); err != nil {
		return fmt.Errorf("applying migration : %w", err)
	}
	return nil
}

// Migrate runs AutoMigrate and, when seed is true, SeedReferenceData.
func Migrate(db *gorm.DB, seed bool) error {
	if err := AutoMigrate(db); err != nil {
		return err
	}
	if !seed {
		return nil
	}
	return SeedReferenceData(db)
}
