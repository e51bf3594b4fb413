package main

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/studyloop/internal/llm"
	"github.com/alexanderramin/studyloop/internal/tutor"
)

// buildExplainer picks the model-backed explainer only when it is enabled
// and the server answers. The boolean reports whether it was chosen.
func buildExplainer(ctx context.Context, cfg llm.Config, client llm.Client, logger *slog.Logger) (tutor.Explainer, bool) {
	if !cfg.Enabled || client == nil {
		return tutor.TemplateExplainer{}, false
	}
	if !client.Available(ctx) {
		logger.Warn("language model unreachable, using template explanations",
			"endpoint", cfg.Endpoint, "model", cfg.Model)
		return tutor.TemplateExplainer{}, false
	}
	return tutor.NewLLMExplainer(client), true
}
