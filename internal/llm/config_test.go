package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STUDYLOOP_LLM_ENABLED", "")
	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "http://localhost:11434", cfg.Endpoint)
	assert.Equal(t, 8000, cfg.TimeoutMs)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STUDYLOOP_LLM_ENABLED", "true")
	t.Setenv("STUDYLOOP_LLM_MODEL", "qwen2.5")
	t.Setenv("STUDYLOOP_LLM_TIMEOUT_MS", "1500")
	t.Setenv("STUDYLOOP_LLM_MAX_RETRIES", "-1")
	t.Setenv("STUDYLOOP_LLM_TEMPERATURE", "9")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "qwen2.5", cfg.Model)
	assert.Equal(t, 1500, cfg.TimeoutMs)
	assert.Equal(t, 1, cfg.MaxRetries, "negative retries are ignored")
	assert.Equal(t, 0.3, cfg.Temperature, "out of range temperature is ignored")
}
