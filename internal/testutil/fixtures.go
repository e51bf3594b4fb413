package testutil

import (
	"time"

	"github.com/alexanderramin/studyloop/internal/domain"
	"github.com/google/uuid"
)

// Substantive is an answer every default policy accepts as real effort.
const Substantive = "I get that fractions are parts of a whole but I don't know how to add them"

// HistoryOption customizes a test history.
type HistoryOption func(*domain.SessionHistory)

func WithRequest(topic, level, goal string) HistoryOption {
	return func(h *domain.SessionHistory) {
		h.Topic, h.Level, h.Goal = topic, level, goal
	}
}

func WithStartedAt(t time.Time) HistoryOption {
	return func(h *domain.SessionHistory) {
		h.StartedAt = t
	}
}

// WithAnswers appends the answers at step in order.
func WithAnswers(step int, answers ...string) HistoryOption {
	return func(h *domain.SessionHistory) {
		for _, a := range answers {
			h.Append(step, a)
		}
	}
}

// NewTestHistory creates a history with a random id, a deterministic clock
// that advances one minute per record, and the given options applied in order.
func NewTestHistory(opts ...HistoryOption) *domain.SessionHistory {
	start := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)
	clock := start
	h := domain.NewSessionHistory(uuid.New().String()).WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})
	h.StartedAt = start
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewTestPortfolio wraps histories in a portfolio.
func NewTestPortfolio(histories ...*domain.SessionHistory) *domain.Portfolio {
	p := domain.NewPortfolio()
	for _, h := range histories {
		p.Add(h)
	}
	return p
}
