package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/alexanderramin/studyloop/internal/llm"
)

const explainSystemPrompt = `You are a patient tutor guiding one student through a fixed study plan.
Rewrite the given step prompt as a short instruction adapted to the student's level and goal.
Do not solve the exercise for the student. Do not add greetings or headers.
Respond with a single JSON object: {"instruction": "<text>"}.`

type llmInstruction struct {
	Instruction string `json:"instruction"`
}

// LLMExplainer words steps with a language model and falls back to the
// template output whenever the model fails or returns unusable text.
type LLMExplainer struct {
	client llm.Client
}

func NewLLMExplainer(client llm.Client) *LLMExplainer {
	return &LLMExplainer{client: client}
}

func (e *LLMExplainer) Explain(ctx context.Context, in ExplainInput) (string, error) {
	payload, err := json.MarshalIndent(struct {
		Topic      string `json:"topic"`
		Level      string `json:"level"`
		Goal       string `json:"goal"`
		StepTitle  string `json:"step_title"`
		StepPrompt string `json:"step_prompt"`
	}{in.Topic, in.Level, in.Goal, in.StepTitle, in.StepPrompt}, "", "  ")
	if err != nil {
		return DeterministicExplain(in), nil
	}

	resp, err := e.client.Generate(ctx, llm.GenerateRequest{
		SystemPrompt: explainSystemPrompt,
		UserPrompt:   "Here is the step:\n\n" + string(payload),
	})
	if err != nil {
		return DeterministicExplain(in), nil
	}

	out, err := llm.ExtractJSON(resp.Text, validateInstruction)
	if err != nil {
		return DeterministicExplain(in), nil
	}
	return strings.TrimSpace(out.Instruction), nil
}

func validateInstruction(v llmInstruction) error {
	if strings.TrimSpace(v.Instruction) == "" {
		return errors.New("instruction is empty")
	}
	return nil
}

var (
	_ Explainer = TemplateExplainer{}
	_ Explainer = (*LLMExplainer)(nil)
)
