package tutor

import (
	"context"
	"testing"

	"github.com/alexanderramin/studyloop/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	text string
	err  error
	reqs []llm.GenerateRequest
}

func (s *stubClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.reqs = append(s.reqs, req)
	if s.err != nil {
		return nil, s.err
	}
	return &llm.GenerateResponse{Text: s.text, Model: "stub"}, nil
}

func (s *stubClient) Available(context.Context) bool { return s.err == nil }

func sampleInput() ExplainInput {
	return ExplainInput{
		Topic:      "fractions",
		Level:      "beginner",
		Goal:       "add fractions",
		StepTitle:  "Core concept",
		StepPrompt: "Explain in your own words what fractions is.",
	}
}

func TestTemplateExplainer_ReturnsPrompt(t *testing.T) {
	got, err := TemplateExplainer{}.Explain(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, "Explain in your own words what fractions is.", got)
}

func TestLLMExplainer_UsesModelInstruction(t *testing.T) {
	client := &stubClient{text: "```json\n{\"instruction\": \"  Describe a fraction using pizza slices. \"}\n```"}
	got, err := NewLLMExplainer(client).Explain(context.Background(), sampleInput())

	require.NoError(t, err)
	assert.Equal(t, "Describe a fraction using pizza slices.", got)
	require.Len(t, client.reqs, 1)
	assert.Contains(t, client.reqs[0].UserPrompt, `"level": "beginner"`)
	assert.Contains(t, client.reqs[0].SystemPrompt, "JSON")
}

func TestLLMExplainer_FallsBack(t *testing.T) {
	tests := []struct {
		name   string
		client *stubClient
	}{
		{"client unavailable", &stubClient{err: llm.ErrOllamaUnavailable}},
		{"timeout", &stubClient{err: llm.ErrTimeout}},
		{"not json", &stubClient{text: "I would rather chat"}},
		{"empty instruction", &stubClient{text: `{"instruction": "   "}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewLLMExplainer(tt.client).Explain(context.Background(), sampleInput())
			require.NoError(t, err)
			assert.Equal(t, sampleInput().StepPrompt, got)
		})
	}
}
