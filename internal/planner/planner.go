// Package planner turns a study request into the fixed sequence of steps a
// session walks through.
package planner

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyloop/internal/domain"
)

// Planner builds the step plan for a study request.
type Planner interface {
	BuildPlan(req domain.StudyRequest) (domain.Plan, error)
}

// SimplePlanner produces the same five-step progression for every topic:
// diagnose, explain the concept, work an example, practice, then prove mastery.
type SimplePlanner struct{}

func NewSimplePlanner() *SimplePlanner {
	return &SimplePlanner{}
}

func (SimplePlanner) BuildPlan(req domain.StudyRequest) (domain.Plan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	t := strings.ToLower(strings.TrimSpace(req.Topic))
	return domain.Plan{
		{Title: "Quick diagnosis", Prompt: fmt.Sprintf("What do you already know about %s, and where do you usually go wrong?", t)},
		{Title: "Core concept", Prompt: fmt.Sprintf("Explain in your own words what %s is.", t)},
		{Title: "Guided example", Prompt: fmt.Sprintf("Let's solve one example of %s step by step. Walk through each step you take.", t)},
		{Title: "Controlled practice", Prompt: fmt.Sprintf("Solve 3 short exercises on %s and show your reasoning.", t)},
		{Title: "Mastery check", Prompt: fmt.Sprintf("Create a new exercise on %s and explain its solution.", t)},
	}, nil
}

var _ Planner = SimplePlanner{}
