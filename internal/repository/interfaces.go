package repository

import (
	"context"

	"github.com/alexanderramin/studyloop/internal/domain"
)

// HistoryRepo is row-level access to stored sessions and their answers.
// SQLitePortfolioStore composes it inside one transaction per save.
type HistoryRepo interface {
	UpsertSession(ctx context.Context, h *domain.SessionHistory) error
	CountRecords(ctx context.Context, sessionID string) (int, error)
	InsertRecord(ctx context.Context, sessionID string, seq int, rec domain.AnswerRecord) error
	GetSession(ctx context.Context, id string) (*domain.SessionHistory, error)
	ListSessions(ctx context.Context) ([]*domain.SessionHistory, error)
}

var _ HistoryRepo = (*SQLiteHistoryRepo)(nil)
