package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studyloop/internal/domain"
	"github.com/alexanderramin/studyloop/internal/planner"
	"github.com/alexanderramin/studyloop/internal/policy"
	"github.com/alexanderramin/studyloop/internal/repository"
	"github.com/alexanderramin/studyloop/internal/tutor"
	"github.com/google/uuid"
)

// StudyDeps are the collaborators of the study orchestrator.
type StudyDeps struct {
	Portfolio *domain.Portfolio
	Store     PortfolioStore
	Planner   planner.Planner
	Policy    policy.Policy
	Explainer tutor.Explainer

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

var _ SessionLookup = (*repository.SQLitePortfolioStore)(nil)

type studyService struct {
	deps     StudyDeps
	observer UseCaseObserver
}

// NewStudyService creates the orchestrator. The portfolio is owned by the
// caller and mutated in place; Store may be nil to keep history in memory.
func NewStudyService(deps StudyDeps, observers ...UseCaseObserver) StudyService {
	if deps.Portfolio == nil {
		deps.Portfolio = domain.NewPortfolio()
	}
	if deps.Planner == nil {
		deps.Planner = planner.NewSimplePlanner()
	}
	if deps.Policy == nil {
		deps.Policy = policy.NewEffortPolicy(policy.DefaultConfig())
	}
	if deps.Explainer == nil {
		deps.Explainer = tutor.TemplateExplainer{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	return &studyService{deps: deps, observer: useCaseObserverOrNoop(observers)}
}

func (s *studyService) Start(ctx context.Context, req domain.StudyRequest) (_ *StudySession, err error) {
	start := time.Now()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "start_session", start, err, fields) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	req = req.Normalized()

	plan, err := s.deps.Planner.BuildPlan(req)
	if err != nil {
		return nil, fmt.Errorf("building plan: %w", err)
	}
	if plan.Len() == 0 {
		return nil, fmt.Errorf("building plan: planner returned no steps")
	}

	id := s.deps.NewID()
	h := s.deps.Portfolio.GetOrCreate(id).WithClock(s.deps.Now)
	h.Topic, h.Level, h.Goal = req.Topic, req.Level, req.Goal
	h.StartedAt = s.deps.Now().UTC()

	fields["session_id"] = id
	fields["total_steps"] = plan.Len()

	if err := s.persist(ctx); err != nil {
		s.deps.Portfolio.Remove(id)
		return nil, err
	}

	return &StudySession{ID: id, Request: req, Plan: plan}, nil
}

func (s *studyService) Explain(ctx context.Context, sess *StudySession) (string, error) {
	step, ok := sess.CurrentStep()
	if !ok {
		return "", ErrSessionCompleted
	}
	text, err := s.deps.Explainer.Explain(ctx, tutor.ExplainInput{
		Topic:      sess.Request.Topic,
		Level:      sess.Request.Level,
		Goal:       sess.Request.Goal,
		StepTitle:  step.Title,
		StepPrompt: step.Prompt,
	})
	if err != nil {
		return "", fmt.Errorf("explaining step %d: %w", sess.Current, err)
	}
	return text, nil
}

// Submit records the answer first and only then asks the policy, because
// every rule reads the just-submitted answer from history.
func (s *studyService) Submit(ctx context.Context, sess *StudySession, answer string) (_ *TurnResult, err error) {
	start := time.Now()
	fields := map[string]any{"session_id": sess.ID, "step": sess.Current}
	defer func() { observe(ctx, s.observer, "submit_answer", start, err, fields) }()

	if sess.Completed {
		return nil, ErrSessionCompleted
	}

	h, err := s.deps.Portfolio.Get(sess.ID)
	if err != nil {
		return nil, err
	}

	step := sess.Current
	rec := h.Append(step, answer)
	result := &TurnResult{
		Step:     step,
		Record:   rec,
		Attempts: h.CountAttempts(step),
	}
	result.PersistErr = s.persist(ctx)

	result.Verdict = s.deps.Policy.Decide(h, step, sess.Plan.Len())
	switch {
	case result.Verdict.Completed():
		sess.Completed = true
	case result.Verdict.NextStep != nil:
		sess.Current = *result.Verdict.NextStep
	}

	fields["action"] = string(result.Verdict.Action)
	fields["reason"] = string(result.Verdict.Reason)
	fields["attempts"] = result.Attempts
	if result.PersistErr != nil {
		fields["persist_error"] = result.PersistErr.Error()
	}
	return result, nil
}

func (s *studyService) Sessions(ctx context.Context) ([]SessionSummary, error) {
	ids := s.deps.Portfolio.IDs()
	out := make([]SessionSummary, 0, len(ids))
	for _, id := range ids {
		h, err := s.deps.Portfolio.Get(id)
		if err != nil {
			return nil, err
		}
		sum := SessionSummary{
			ID:          h.ID,
			Topic:       h.Topic,
			Level:       h.Level,
			Goal:        h.Goal,
			StartedAt:   h.StartedAt,
			Answers:     h.Len(),
			HighestStep: h.HighestStep(),
		}
		if last, ok := h.LastAnswer(); ok {
			sum.LastAnswer = last.CreatedAt
		}
		out = append(out, sum)
	}
	return out, nil
}

// Session reads from the store when it supports single-session lookups,
// otherwise from the loaded portfolio.
func (s *studyService) Session(ctx context.Context, id string) (*domain.SessionHistory, error) {
	lookup, ok := s.deps.Store.(SessionLookup)
	if !ok {
		return s.deps.Portfolio.Get(id)
	}
	h, err := lookup.GetSession(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("session %q: %w", id, domain.ErrSessionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	return h, nil
}

func (s *studyService) persist(ctx context.Context) error {
	if s.deps.Store == nil {
		return nil
	}
	if err := s.deps.Store.Save(ctx, s.deps.Portfolio); err != nil {
		return fmt.Errorf("saving portfolio: %w", err)
	}
	return nil
}
