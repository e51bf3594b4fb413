package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/alexanderramin/studyloop/internal/llm"
	"github.com/alexanderramin/studyloop/internal/tutor"
	"github.com/stretchr/testify/assert"
)

type fakeClient struct {
	available bool
	checks    int
}

func (f *fakeClient) Generate(context.Context, llm.GenerateRequest) (*llm.GenerateResponse, error) {
	return &llm.GenerateResponse{Text: "explanation"}, nil
}

func (f *fakeClient) Available(context.Context) bool {
	f.checks++
	return f.available
}

func TestBuildExplainer(t *testing.T) {
	enabled := llm.DefaultConfig()
	enabled.Enabled = true

	tests := []struct {
		name       string
		cfg        llm.Config
		available  bool
		wantLLM    bool
		wantChecks int
		wantWarn   bool
	}{
		{name: "disabled skips the server", cfg: llm.DefaultConfig(), available: true},
		{name: "enabled and reachable", cfg: enabled, available: true, wantLLM: true, wantChecks: 1},
		{name: "enabled but unreachable", cfg: enabled, available: false, wantChecks: 1, wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			client := &fakeClient{available: tt.available}

			explainer, usesLLM := buildExplainer(context.Background(), tt.cfg, client, logger)

			assert.Equal(t, tt.wantLLM, usesLLM)
			assert.Equal(t, tt.wantChecks, client.checks)
			if tt.wantLLM {
				assert.IsType(t, &tutor.LLMExplainer{}, explainer)
			} else {
				assert.IsType(t, tutor.TemplateExplainer{}, explainer)
			}
			if tt.wantWarn {
				assert.Contains(t, logs.String(), "language model unreachable")
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}
