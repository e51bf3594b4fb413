package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/studyloop/internal/domain"
)

// ErrSessionCompleted is returned when answers are submitted after the
// last step was passed.
var ErrSessionCompleted = errors.New("study session already completed")

// PortfolioStore persists the whole portfolio between runs.
type PortfolioStore interface {
	Load(ctx context.Context) (*domain.Portfolio, error)
	Save(ctx context.Context, p *domain.Portfolio) error
}

// SessionLookup is implemented by stores that can read one session without
// loading the whole portfolio.
type SessionLookup interface {
	GetSession(ctx context.Context, id string) (*domain.SessionHistory, error)
}

// StudyService drives one study session turn by turn.
type StudyService interface {
	Start(ctx context.Context, req domain.StudyRequest) (*StudySession, error)
	Explain(ctx context.Context, s *StudySession) (string, error)
	Submit(ctx context.Context, s *StudySession, answer string) (*TurnResult, error)

	Sessions(ctx context.Context) ([]SessionSummary, error)
	Session(ctx context.Context, id string) (*domain.SessionHistory, error)
}

// StudySession is the orchestrator's view of an active session.
type StudySession struct {
	ID        string
	Request   domain.StudyRequest
	Plan      domain.Plan
	Current   int
	Completed bool
}

// CurrentStep returns the step awaiting an answer.
func (s *StudySession) CurrentStep() (domain.StepDescriptor, bool) {
	if s.Completed {
		return domain.StepDescriptor{}, false
	}
	return s.Plan.Step(s.Current)
}

// TurnResult describes what happened to one submitted answer.
type TurnResult struct {
	Step     int
	Record   domain.AnswerRecord
	Attempts int
	Verdict  domain.Verdict

	// PersistErr is set when the snapshot could not be written. The turn
	// itself still applies.
	PersistErr error
}

// SessionSummary is a one-line overview of a stored session.
type SessionSummary struct {
	ID          string
	Topic       string
	Level       string
	Goal        string
	StartedAt   time.Time
	Answers     int
	HighestStep int
	LastAnswer  time.Time
}
