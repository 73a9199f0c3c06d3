package main

import (
	"database/sql"
	"fmt"
	"os"
	"sort"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/afghan7861/Zentro-backend/internal/infra"
	"github.com/afghan7861/Zentro-backend/migrations"
)

// Applies the SQL files embedded in migrations/ in lexical order, recording
// each applied file in schema_migrations so reruns are no-ops.
func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	logger := infra.NewLogger(os.Getenv("APP_ENV"))

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer func() {
		_ = db.Close()
	}()

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		filename TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`); err != nil {
		logger.Fatal().Err(err).Msg("ensure schema_migrations")
	}

	entries, err := migrations.Files.ReadDir(".")
	if err != nil {
		logger.Fatal().Err(err).Msg("read migrations")
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var exists bool
		if err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE filename = $1)`, name).Scan(&exists); err != nil {
			logger.Fatal().Err(err).Str("file", name).Msg("check migration")
		}
		if exists {
			logger.Debug().Str("file", name).Msg("already applied")
			continue
		}
		contents, err := migrations.Files.ReadFile(name)
		if err != nil {
			logger.Fatal().Err(err).Str("file", name).Msg("read migration")
		}
		tx, err := db.Begin()
		if err != nil {
			logger.Fatal().Err(err).Msg("begin transaction")
		}
		if _, err := tx.Exec(string(contents)); err != nil {
			_ = tx.Rollback()
			logger.Fatal().Err(err).Str("file", name).Msg("apply migration")
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (filename) VALUES ($1)`, name); err != nil {
			_ = tx.Rollback()
			logger.Fatal().Err(err).Str("file", name).Msg("record migration")
		}
		if err := tx.Commit(); err != nil {
			logger.Fatal().Err(err).Str("file", name).Msg("commit migration")
		}
		logger.Info().Str("file", name).Msg("migration applied")
	}
}
