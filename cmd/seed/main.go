// Command seed loads sample content (homepage, contact details, blog and
// listings) into the site database. Existing rows are left untouched.
//
//	seed                      # embedded sample fixture, DB_PATH database
//	seed -file fixtures.yaml  # custom fixture
//	seed -db /tmp/site.db
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-domain-finder/internal/config"
	"github.com/tbourn/go-domain-finder/internal/repo"
	"github.com/tbourn/go-domain-finder/internal/seed"
	"github.com/tbourn/go-domain-finder/internal/sysutil"
)

func main() {
	_ = godotenv.Load()

	file := flag.String("file", "", "YAML fixture (default: built-in sample)")
	dbPath := flag.String("db", "", "SQLite database path (default: DB_PATH)")
	pretty := flag.Bool("pretty", true, "human-readable log output")
	flag.Parse()

	sysutil.ConfigureLogging(os.Getenv("LOG_LEVEL"), *pretty, nil)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	path := sysutil.FirstNonEmpty(*dbPath, cfg.DBPath)

	fx, err := loadFixture(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("load fixture")
	}

	db, err := repo.OpenSQLite(path, repo.Options{Silent: true})
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("open database")
	}
	if err := repo.Migrate(db, true); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	rep, err := seed.Apply(ctx, db, fx)
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().
		Str("db", path).
		Bool("homepage", rep.HomePage).
		Bool("contact", rep.Contact).
		Int("categories", rep.Categories).
		Int("authors", rep.Authors).
		Int("posts", rep.Posts).
		Int("listings", rep.Listings).
		Msg("seed complete")
}

func loadFixture(path string) (*seed.Fixture, error) {
	if path == "" {
		return seed.Parse(seed.Sample)
	}
	return seed.LoadFile(path)
}
