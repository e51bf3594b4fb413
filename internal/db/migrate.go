package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Every statement is idempotent so it is safe
// to run on each start.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS study_sessions (
		id         TEXT PRIMARY KEY,
		topic      TEXT NOT NULL DEFAULT '',
		level      TEXT NOT NULL DEFAULT '',
		goal       TEXT NOT NULL DEFAULT '',
		started_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS answer_records (
		session_id     TEXT NOT NULL REFERENCES study_sessions(id) ON DELETE CASCADE,
		seq            INTEGER NOT NULL,
		step_index     INTEGER NOT NULL CHECK(step_index >= 0),
		student_answer TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL,
		PRIMARY KEY (session_id, seq)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_answer_records_step ON answer_records(session_id, step_index)`,
	`CREATE INDEX IF NOT EXISTS idx_study_sessions_started ON study_sessions(started_at)`,
}
