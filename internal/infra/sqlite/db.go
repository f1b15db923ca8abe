// Package sqlite provides SQLite-based persistent storage for ninth.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Daily identity votes, one document per (user, day).
		`CREATE TABLE IF NOT EXISTS votes (
			id        TEXT NOT NULL,
			user_id   TEXT NOT NULL,
			date      TEXT NOT NULL,
			vote      TEXT NOT NULL,
			note      TEXT NOT NULL DEFAULT '',
			timestamp INTEGER NOT NULL,
			PRIMARY KEY (user_id, date)
		)`,

		// Daily numeric measurements; score columns stay NULL until the
		// user logs that field.
		`CREATE TABLE IF NOT EXISTS entries (
			id                  TEXT NOT NULL,
			user_id             TEXT NOT NULL,
			date                TEXT NOT NULL,
			presence_score      INTEGER,
			productivity_score  INTEGER,
			deep_work_sets      INTEGER,
			time_waster_minutes INTEGER,
			timestamp           INTEGER NOT NULL,
			PRIMARY KEY (user_id, date)
		)`,

		// 5-second-rule taps, append-only.
		`CREATE TABLE IF NOT EXISTS actions (
			id        TEXT PRIMARY KEY,
			user_id   TEXT NOT NULL,
			date      TEXT NOT NULL,
			category  TEXT NOT NULL,
			note      TEXT NOT NULL DEFAULT '',
			timestamp INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_actions_user_date ON actions(user_id, date)`,

		// Daily/weekly/monthly goals keyed by period.
		`CREATE TABLE IF NOT EXISTS goals (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			type       TEXT NOT NULL,
			title      TEXT NOT NULL,
			completed  BOOLEAN NOT NULL DEFAULT 0,
			date       TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_goals_user_type ON goals(user_id, type)`,

		// Habits and their per-day completion toggles. Habits archive
		// instead of deleting so completions keep their referent.
		`CREATE TABLE IF NOT EXISTS habits (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			name       TEXT NOT NULL,
			category   TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL,
			archived   BOOLEAN NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS habit_completions (
			id        TEXT PRIMARY KEY,
			user_id   TEXT NOT NULL,
			habit_id  TEXT NOT NULL,
			date      TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT 0,
			timestamp INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_completions_user_date ON habit_completions(user_id, date)`,

		// Per-user settings document.
		`CREATE TABLE IF NOT EXISTS settings (
			user_id                      TEXT PRIMARY KEY,
			identity                     TEXT NOT NULL,
			notifications_enabled        BOOLEAN NOT NULL DEFAULT 1,
			morning_reminder_time        TEXT NOT NULL,
			midday_reminder_time         TEXT NOT NULL,
			evening_reminder_time        TEXT NOT NULL,
			hourly_notifications_enabled BOOLEAN NOT NULL DEFAULT 0,
			hourly_notification_start    TEXT NOT NULL DEFAULT '',
			hourly_notification_end      TEXT NOT NULL DEFAULT '',
			hourly_notification_message  TEXT NOT NULL DEFAULT ''
		)`,

		// Levels game state singleton per user.
		`CREATE TABLE IF NOT EXISTS game_state (
			user_id                       TEXT PRIMARY KEY,
			presence_level                INTEGER NOT NULL,
			presence_level_start_date     TEXT NOT NULL,
			productivity_level            INTEGER NOT NULL,
			productivity_level_start_date TEXT NOT NULL
		)`,

		// Reminder log (max one per kind per day, quiet hours enforced
		// by the scheduler).
		`CREATE TABLE IF NOT EXISTS reminders (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    TEXT NOT NULL,
			kind       TEXT NOT NULL,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			shown      BOOLEAN NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_user_created ON reminders(user_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
