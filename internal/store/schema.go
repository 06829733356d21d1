package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Times are stored as Unix milliseconds so they round-trip exactly and
// compare with plain integer operators.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS mastery_records (
		word_key       TEXT PRIMARY KEY,
		headword       TEXT NOT NULL,
		meaning        TEXT NOT NULL,
		bucket         INTEGER NOT NULL DEFAULT 0 CHECK (bucket BETWEEN 0 AND 4),
		seen_count     INTEGER NOT NULL DEFAULT 0,
		correct_count  INTEGER NOT NULL DEFAULT 0,
		wrong_count    INTEGER NOT NULL DEFAULT 0,
		last_seen_at   INTEGER,
		next_review_at INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mastery_bucket ON mastery_records (bucket)`,
	`CREATE INDEX IF NOT EXISTS idx_mastery_next_review ON mastery_records (next_review_at)`,

	`CREATE TABLE IF NOT EXISTS practice_events (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		day          TEXT NOT NULL,
		timestamp_ms INTEGER NOT NULL,
		headword     TEXT NOT NULL,
		meaning      TEXT NOT NULL,
		library_name TEXT NOT NULL DEFAULT '',
		correct      BOOLEAN NOT NULL,
		char_count   INTEGER NOT NULL DEFAULT 0,
		session_id   TEXT NOT NULL DEFAULT '',
		mode         TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_day ON practice_events (day)`,
	`CREATE INDEX IF NOT EXISTS idx_events_timestamp ON practice_events (timestamp_ms)`,
	`CREATE INDEX IF NOT EXISTS idx_events_library ON practice_events (library_name)`,

	`CREATE TABLE IF NOT EXISTS libraries (
		name        TEXT PRIMARY KEY,
		imported_at INTEGER NOT NULL,
		word_count  INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS library_words (
		library_name TEXT NOT NULL REFERENCES libraries (name) ON DELETE CASCADE,
		position     INTEGER NOT NULL,
		headword     TEXT NOT NULL,
		meaning      TEXT NOT NULL,
		PRIMARY KEY (library_name, position)
	)`,

	`CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS achievements (
		id           TEXT PRIMARY KEY,
		position     INTEGER NOT NULL,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL,
		progress     INTEGER NOT NULL DEFAULT 0,
		max_progress INTEGER NOT NULL,
		unlocked     BOOLEAN NOT NULL DEFAULT FALSE
	)`,
}

// migrate creates every table and index that does not exist yet.
func migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}
