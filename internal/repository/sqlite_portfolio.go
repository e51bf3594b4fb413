package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/studyloop/internal/db"
	"github.com/alexanderramin/studyloop/internal/domain"
)

// SQLitePortfolioStore persists the portfolio in SQLite. Histories are
// append-only, so Save writes only the records past what is already stored.
type SQLitePortfolioStore struct {
	db      *sql.DB
	uow     db.UnitOfWork
	newRepo func(db.DBTX) HistoryRepo
}

func NewSQLitePortfolioStore(database *sql.DB, uow db.UnitOfWork) *SQLitePortfolioStore {
	return &SQLitePortfolioStore{
		db:      database,
		uow:     uow,
		newRepo: func(conn db.DBTX) HistoryRepo { return NewSQLiteHistoryRepo(conn) },
	}
}

func (s *SQLitePortfolioStore) Load(ctx context.Context) (*domain.Portfolio, error) {
	sessions, err := s.newRepo(s.db).ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading portfolio: %w", err)
	}
	p := domain.NewPortfolio()
	for _, h := range sessions {
		p.Add(h)
	}
	return p, nil
}

func (s *SQLitePortfolioStore) Save(ctx context.Context, p *domain.Portfolio) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := s.newRepo(tx)
		for _, id := range p.IDs() {
			h, err := p.Get(id)
			if err != nil {
				return err
			}
			if err := repo.UpsertSession(ctx, h); err != nil {
				return err
			}
			stored, err := repo.CountRecords(ctx, id)
			if err != nil {
				return err
			}
			records := h.Records()
			for seq := stored; seq < len(records); seq++ {
				if err := repo.InsertRecord(ctx, id, seq, records[seq]); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// GetSession loads a single session; unknown ids return ErrNotFound.
func (s *SQLitePortfolioStore) GetSession(ctx context.Context, id string) (*domain.SessionHistory, error) {
	return s.newRepo(s.db).GetSession(ctx, id)
}
