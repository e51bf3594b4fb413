package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesTablesAndIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"study_sessions", "answer_records"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
	for _, idx := range []string{"idx_answer_records_step", "idx_study_sessions_started"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_RejectsNegativeStep(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO study_sessions (id, created_at, updated_at) VALUES ('s', 'x', 'x')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO answer_records (session_id, seq, step_index, created_at) VALUES ('s', 0, -1, 'x')`)
	assert.Error(t, err)
}

func TestMigrate_ForeignKeysEnforced(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO answer_records (session_id, seq, step_index, created_at) VALUES ('ghost', 0, 0, 'x')`)
	assert.Error(t, err, "records must belong to an existing session")
}
