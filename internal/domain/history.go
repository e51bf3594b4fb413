package domain

import "time"

// AnswerRecord binds one submitted answer to a step position.
type AnswerRecord struct {
	StepIndex int
	Answer    string
	CreatedAt time.Time
}

// SessionHistory is the append-only answer log of one study session.
// Insertion order is chronological order.
type SessionHistory struct {
	ID        string
	Topic     string
	Level     string
	Goal      string
	StartedAt time.Time

	records []AnswerRecord
	now     func() time.Time
}

// NewSessionHistory creates an empty history for the given session id.
func NewSessionHistory(id string) *SessionHistory {
	return &SessionHistory{ID: id, now: time.Now}
}

// WithClock overrides the time source used to stamp appended records.
func (h *SessionHistory) WithClock(now func() time.Time) *SessionHistory {
	h.now = now
	return h
}

// Append records an answer at the given step and returns the stored record.
func (h *SessionHistory) Append(step int, answer string) AnswerRecord {
	now := h.now
	if now == nil {
		now = time.Now
	}
	rec := AnswerRecord{StepIndex: step, Answer: answer, CreatedAt: now().UTC()}
	h.records = append(h.records, rec)
	return rec
}

// AppendRecord restores a previously persisted record as-is.
func (h *SessionHistory) AppendRecord(rec AnswerRecord) {
	h.records = append(h.records, rec)
}

// LastAnswerFor returns the most recent answer submitted at exactly step.
func (h *SessionHistory) LastAnswerFor(step int) (string, bool) {
	for i := len(h.records) - 1; i >= 0; i-- {
		if h.records[i].StepIndex == step {
			return h.records[i].Answer, true
		}
	}
	return "", false
}

// PreviousAnswerFor returns the answer at step that immediately precedes
// the last one, skipping records of other steps in between.
func (h *SessionHistory) PreviousAnswerFor(step int) (string, bool) {
	seen := 0
	for i := len(h.records) - 1; i >= 0; i-- {
		if h.records[i].StepIndex != step {
			continue
		}
		seen++
		if seen == 2 {
			return h.records[i].Answer, true
		}
	}
	return "", false
}

// CountAttempts returns how many answers were recorded at step.
func (h *SessionHistory) CountAttempts(step int) int {
	n := 0
	for _, r := range h.records {
		if r.StepIndex == step {
			n++
		}
	}
	return n
}

// LastAnswer returns the last record of the session regardless of step.
func (h *SessionHistory) LastAnswer() (AnswerRecord, bool) {
	if len(h.records) == 0 {
		return AnswerRecord{}, false
	}
	return h.records[len(h.records)-1], true
}

// Records returns a copy of all records in insertion order.
func (h *SessionHistory) Records() []AnswerRecord {
	out := make([]AnswerRecord, len(h.records))
	copy(out, h.records)
	return out
}

func (h *SessionHistory) Len() int {
	return len(h.records)
}

// HighestStep returns the largest step index seen, or -1 for an empty history.
func (h *SessionHistory) HighestStep() int {
	max := -1
	for _, r := range h.records {
		if r.StepIndex > max {
			max = r.StepIndex
		}
	}
	return max
}
