package migration

import (
	"context"
	"fmt"
	"strings"

	"lifeos/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// columnTypes are the dialect-specific spellings used by the schema
type columnTypes struct {
	Timestamp string
	JSON      string
	Float     string
	Bool      string
}

func typesFor(driverName string) columnTypes {
	if driverName == "postgres" {
		return columnTypes{Timestamp: "TIMESTAMPTZ", JSON: "JSONB", Float: "DOUBLE PRECISION", Bool: "BOOLEAN"}
	}
	return columnTypes{Timestamp: "TEXT", JSON: "TEXT", Float: "REAL", Bool: "INTEGER"}
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	t := typesFor(db.DriverName())

	steps := []struct {
		name string
		sql  string
	}{
		{"energy_checkins", `
			CREATE TABLE IF NOT EXISTS energy_checkins (
				date TEXT PRIMARY KEY,
				energy TEXT NOT NULL,
				nervous_system TEXT NOT NULL,
				factors {{JSON}} NOT NULL,
				note TEXT NOT NULL DEFAULT '',
				updated_at {{TIMESTAMP}} NOT NULL
			)`},
		{"day_statuses", `
			CREATE TABLE IF NOT EXISTS day_statuses (
				date TEXT PRIMARY KEY,
				status TEXT NOT NULL
			)`},
		{"smokefree_profile", `
			CREATE TABLE IF NOT EXISTS smokefree_profile (
				id INTEGER PRIMARY KEY,
				quit_date TEXT NOT NULL,
				cigarettes_per_day INTEGER NOT NULL,
				cost_per_pack {{FLOAT}} NOT NULL,
				cigarettes_per_pack INTEGER NOT NULL
			)`},
		{"self_expressions", `
			CREATE TABLE IF NOT EXISTS self_expressions (
				date TEXT PRIMARY KEY,
				expressed {{BOOL}} NOT NULL,
				types {{JSON}} NOT NULL,
				note TEXT NOT NULL DEFAULT ''
			)`},
		{"journal_entries", `
			CREATE TABLE IF NOT EXISTS journal_entries (
				id TEXT PRIMARY KEY,
				date TEXT NOT NULL,
				content TEXT NOT NULL,
				mood TEXT NOT NULL DEFAULT '',
				tags {{JSON}} NOT NULL,
				created_at {{TIMESTAMP}} NOT NULL,
				updated_at {{TIMESTAMP}} NOT NULL
			)`},
		{"goals", `
			CREATE TABLE IF NOT EXISTS goals (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				category TEXT NOT NULL,
				timeframe TEXT NOT NULL,
				status TEXT NOT NULL,
				progress INTEGER NOT NULL DEFAULT 0,
				milestones {{JSON}} NOT NULL,
				start_date TEXT NOT NULL,
				target_date TEXT NOT NULL DEFAULT '',
				priority INTEGER NOT NULL,
				created_at {{TIMESTAMP}} NOT NULL,
				updated_at {{TIMESTAMP}} NOT NULL
			)`},
		{"urges", `
			CREATE TABLE IF NOT EXISTS urges (
				id TEXT PRIMARY KEY,
				logged_at {{TIMESTAMP}} NOT NULL,
				day TEXT NOT NULL,
				intensity INTEGER NOT NULL,
				trigger_text TEXT NOT NULL DEFAULT '',
				replacement TEXT NOT NULL DEFAULT '',
				notes TEXT NOT NULL DEFAULT ''
			)`},
		{"weekly_digests", `
			CREATE TABLE IF NOT EXISTS weekly_digests (
				id TEXT PRIMARY KEY,
				week_ending TEXT NOT NULL,
				summary {{JSON}} NOT NULL,
				fingerprint TEXT NOT NULL,
				created_at {{TIMESTAMP}} NOT NULL
			)`},
	}

	for _, step := range steps {
		if _, err := db.ExecContext(ctx, render(step.sql, t)); err != nil {
			return errors.Wrapf(err, "failed to create %s table", step.name)
		}
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func render(sql string, t columnTypes) string {
	return strings.NewReplacer(
		"{{TIMESTAMP}}", t.Timestamp,
		"{{JSON}}", t.JSON,
		"{{FLOAT}}", t.Float,
		"{{BOOL}}", t.Bool,
	).Replace(sql)
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_journal_date ON journal_entries(date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_journal_mood ON journal_entries(mood)",
		"CREATE INDEX IF NOT EXISTS idx_goals_status ON goals(status)",
		"CREATE INDEX IF NOT EXISTS idx_urges_day ON urges(day)",
		"CREATE INDEX IF NOT EXISTS idx_digests_created_at ON weekly_digests(created_at DESC)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_digests_week_ending ON weekly_digests(week_ending)",
	}

	for _, idxSQL := range indexes {
		if _, err := db.ExecContext(ctx, idxSQL); err != nil {
			return fmt.Errorf("%s: %w", idxSQL, err)
		}
	}

	return nil
}
