package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studyloop/internal/db"
	"github.com/alexanderramin/studyloop/internal/domain"
)

// SQLiteHistoryRepo reads and writes session histories. It works against a
// plain *sql.DB or a transaction.
type SQLiteHistoryRepo struct {
	db db.DBTX
}

func NewSQLiteHistoryRepo(conn db.DBTX) *SQLiteHistoryRepo {
	return &SQLiteHistoryRepo{db: conn}
}

// UpsertSession inserts the session header or refreshes its metadata.
func (r *SQLiteHistoryRepo) UpsertSession(ctx context.Context, h *domain.SessionHistory) error {
	query := `INSERT INTO study_sessions (id, topic, level, goal, started_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			topic = excluded.topic,
			level = excluded.level,
			goal = excluded.goal,
			started_at = excluded.started_at,
			updated_at = excluded.updated_at`
	now := nowUTC()
	_, err := r.db.ExecContext(ctx, query,
		h.ID, h.Topic, h.Level, h.Goal,
		nullableTime(h.StartedAt),
		now, now,
	)
	if err != nil {
		return fmt.Errorf("upserting study session: %w", err)
	}
	return nil
}

// CountRecords returns how many records are stored for a session.
func (r *SQLiteHistoryRepo) CountRecords(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM answer_records WHERE session_id = ?`, sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting answer records: %w", err)
	}
	return n, nil
}

// InsertRecord stores rec at position seq of the session log.
func (r *SQLiteHistoryRepo) InsertRecord(ctx context.Context, sessionID string, seq int, rec domain.AnswerRecord) error {
	query := `INSERT INTO answer_records (session_id, seq, step_index, student_answer, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		sessionID, seq, rec.StepIndex, rec.Answer,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting answer record: %w", err)
	}
	return nil
}

// GetSession loads one session with all of its records.
func (r *SQLiteHistoryRepo) GetSession(ctx context.Context, id string) (*domain.SessionHistory, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, topic, level, goal, started_at FROM study_sessions WHERE id = ?`, id)
	h, err := scanSessionHeader(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("study session %q: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if err := r.loadRecords(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// ListSessions loads every session with its records, oldest first.
func (r *SQLiteHistoryRepo) ListSessions(ctx context.Context) ([]*domain.SessionHistory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, topic, level, goal, started_at FROM study_sessions ORDER BY started_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing study sessions: %w", err)
	}

	var sessions []*domain.SessionHistory
	for rows.Next() {
		h, err := scanSessionHeader(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		sessions = append(sessions, h)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating study sessions: %w", err)
	}
	rows.Close()

	// Records are read after the header cursor is closed so a single
	// connection pool is never asked for two open result sets.
	for _, h := range sessions {
		if err := r.loadRecords(ctx, h); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

func (r *SQLiteHistoryRepo) loadRecords(ctx context.Context, h *domain.SessionHistory) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT step_index, student_answer, created_at FROM answer_records
		WHERE session_id = ? ORDER BY seq`, h.ID)
	if err != nil {
		return fmt.Errorf("listing answer records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec domain.AnswerRecord
		var createdAtStr string
		if err := rows.Scan(&rec.StepIndex, &rec.Answer, &createdAtStr); err != nil {
			return fmt.Errorf("scanning answer record: %w", err)
		}
		rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr)
		if err != nil {
			return fmt.Errorf("parsing created_at: %w", err)
		}
		h.AppendRecord(rec)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating answer records: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSessionHeader(row rowScanner) (*domain.SessionHistory, error) {
	var id, topic, level, goal string
	var startedAt sql.NullString
	if err := row.Scan(&id, &topic, &level, &goal, &startedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning study session: %w", err)
	}
	h := domain.NewSessionHistory(id)
	h.Topic, h.Level, h.Goal = topic, level, goal
	if t := parseNullableTime(startedAt, time.RFC3339Nano); t != nil {
		h.StartedAt = *t
	}
	return h, nil
}
