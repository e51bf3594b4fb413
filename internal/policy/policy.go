// Package policy decides, after each submitted answer, whether the student
// retries the current step or advances.
package policy

import "github.com/alexanderramin/studyloop/internal/domain"

// Policy computes the next control action for a session turn.
// Callers must append the current answer to history before calling Decide.
type Policy interface {
	Decide(history *domain.SessionHistory, step, totalSteps int) domain.Verdict
}

// EffortPolicy judges the effort of answers, not their correctness.
// Rules are evaluated in order and the first match wins:
// empty, repeated, low effort, end of plan, advance.
type EffortPolicy struct {
	cfg     Config
	fillers map[string]struct{}
}

// NewEffortPolicy builds an EffortPolicy. Zero or negative limits in cfg
// fall back to DefaultConfig values. cfg is not validated here: if
// EarlyFrictionAttempts >= MaxAttemptsPerStep the early rule always wins,
// which Config.Validate rejects.
func NewEffortPolicy(cfg Config) *EffortPolicy {
	cfg = cfg.withDefaults()
	fillers := make(map[string]struct{}, len(cfg.FillerTokens))
	for _, tok := range cfg.FillerTokens {
		key := FoldAccents(Normalize(tok))
		if key != "" {
			fillers[key] = struct{}{}
		}
	}
	return &EffortPolicy{cfg: cfg, fillers: fillers}
}

// Config returns the effective configuration.
func (p *EffortPolicy) Config() Config {
	return p.cfg
}

func (p *EffortPolicy) Decide(history *domain.SessionHistory, step, totalSteps int) domain.Verdict {
	last, ok := history.LastAnswerFor(step)
	if !ok || isBlank(last) {
		return retry(step, domain.ReasonEmptyOrMissing, msgEmptyAnswer)
	}

	normalized := Normalize(last)
	if prev, ok := history.PreviousAnswerFor(step); ok && Normalize(prev) == normalized {
		return retry(step, domain.ReasonRepeatedAnswer, msgRepeatedAnswer)
	}

	if p.IsLowEffort(last) {
		attempts := history.CountAttempts(step)
		switch {
		case attempts <= p.cfg.EarlyFrictionAttempts:
			return retry(step, domain.ReasonLowEffortEarly, msgLowEffortEarly)
		case attempts >= p.cfg.MaxAttemptsPerStep:
			return retry(step, domain.ReasonTooManyAttempts, msgTooManyAttempts)
		default:
			return retry(step, domain.ReasonLowEffortRetry, msgLowEffortRetry)
		}
	}

	if step+1 >= totalSteps {
		return domain.Verdict{
			Action: domain.ActionAdvance,
			Reason: domain.ReasonEndOfPlan,
		}
	}

	return domain.Verdict{
		Action:   domain.ActionAdvance,
		Reason:   domain.ReasonAnswerProvided,
		NextStep: domain.IntPtr(step + 1),
	}
}

// IsLowEffort reports whether answer is too short or generic to show
// engagement with the step.
func (p *EffortPolicy) IsLowEffort(answer string) bool {
	normalized := Normalize(answer)
	if normalized == "" {
		return true
	}
	length := runeLen(normalized)
	if length < p.cfg.MinChars {
		return true
	}
	if _, ok := p.fillers[FoldAccents(normalized)]; ok {
		return true
	}
	return isSingleWord(normalized) && length < p.cfg.ShortWordChars
}

func retry(step int, reason domain.ReasonCode, friction string) domain.Verdict {
	return domain.Verdict{
		Action:   domain.ActionRetry,
		Reason:   reason,
		NextStep: domain.IntPtr(step),
		Friction: friction,
	}
}

// Compile-time check.
var _ Policy = (*EffortPolicy)(nil)
