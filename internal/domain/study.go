package domain

import (
	"fmt"
	"strings"
)

// StudyRequest is what the student asks to study at session start.
type StudyRequest struct {
	Topic string
	Level string
	Goal  string
}

// ValidationError reports a blank or otherwise unusable request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate rejects requests whose fields are empty after trimming.
func (r StudyRequest) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"topic", r.Topic},
		{"level", r.Level},
		{"goal", r.Goal},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name, Message: "cannot be empty"}
		}
	}
	return nil
}

// Normalized returns a copy with surrounding whitespace removed from every field.
func (r StudyRequest) Normalized() StudyRequest {
	return StudyRequest{
		Topic: strings.TrimSpace(r.Topic),
		Level: strings.TrimSpace(r.Level),
		Goal:  strings.TrimSpace(r.Goal),
	}
}

// StepDescriptor is one titled prompt of a study plan.
type StepDescriptor struct {
	Title  string
	Prompt string
}

// Plan is the fixed, ordered sequence of steps for a session.
type Plan []StepDescriptor

func (p Plan) Len() int {
	return len(p)
}

// Step returns the descriptor at position i.
func (p Plan) Step(i int) (StepDescriptor, bool) {
	if i < 0 || i >= len(p) {
		return StepDescriptor{}, false
	}
	return p[i], true
}
