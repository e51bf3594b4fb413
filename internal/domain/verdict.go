package domain

// Action is the control-flow outcome of a decision.
type Action string

const (
	ActionRetry   Action = "RETRY"
	ActionAdvance Action = "ADVANCE"
)

// ReasonCode explains which rule produced a verdict.
type ReasonCode string

const (
	ReasonEmptyOrMissing  ReasonCode = "empty_or_missing_answer"
	ReasonRepeatedAnswer  ReasonCode = "repeated_answer_same_step"
	ReasonLowEffortEarly  ReasonCode = "low_effort_early"
	ReasonTooManyAttempts ReasonCode = "too_many_attempts_low_effort"
	ReasonLowEffortRetry  ReasonCode = "low_effort_retry"
	ReasonEndOfPlan       ReasonCode = "end_of_plan_reached"
	ReasonAnswerProvided  ReasonCode = "answer_provided"
)

// Verdict is the decision engine's output for one turn.
type Verdict struct {
	Action   Action
	Reason   ReasonCode
	NextStep *int // nil only when the plan is complete
	Friction string
}

// Completed reports whether the verdict ends the session.
func (v Verdict) Completed() bool {
	return v.Action == ActionAdvance && v.NextStep == nil
}

// IntPtr returns a pointer to a copy of v.
func IntPtr(v int) *int {
	return &v
}
