// Package tutor produces the instruction text shown for each study step.
package tutor

import "context"

// ExplainInput is everything an explainer may use to word a step.
type ExplainInput struct {
	Topic      string
	Level      string
	Goal       string
	StepTitle  string
	StepPrompt string
}

// Explainer returns display text for a step.
type Explainer interface {
	Explain(ctx context.Context, in ExplainInput) (string, error)
}

// TemplateExplainer returns the step prompt unchanged. Session headers and
// framing belong to the terminal shell, not to the explanation.
type TemplateExplainer struct{}

func (TemplateExplainer) Explain(_ context.Context, in ExplainInput) (string, error) {
	return DeterministicExplain(in), nil
}

// DeterministicExplain is the template output, also used as the LLM fallback.
func DeterministicExplain(in ExplainInput) string {
	return in.StepPrompt
}
