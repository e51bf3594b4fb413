package policy

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the effort thresholds and filler vocabulary of EffortPolicy.
type Config struct {
	MinChars              int      `yaml:"min_chars"`
	ShortWordChars        int      `yaml:"short_word_chars"`
	EarlyFrictionAttempts int      `yaml:"early_friction_attempts"`
	MaxAttemptsPerStep    int      `yaml:"max_attempts_per_step"`
	FillerTokens          []string `yaml:"filler_tokens"`
}

// DefaultFillerTokens is the closed set of affirmations and fillers treated
// as low effort. Matching is case and accent insensitive.
var DefaultFillerTokens = []string{
	// English
	"ok", "okay", "k", "yes", "yeah", "yep", "no", "nope", "idk", "dunno",
	"maybe", "sure", "fine", "hmm", "uh", "um", "huh", "lol", "?", "...",
	"i don't know", "no idea", "whatever",
	// Portuguese
	"sim", "não", "nao", "sei lá", "sei la", "não sei", "nao sei", "talvez",
	"beleza", "blz", "tá", "ta", "aham", "uhum", "hum", "né", "sla", "entendi",
	// Single letters
	"a", "b", "c", "d", "e", "x", "y", "z",
}

// DefaultConfig returns the thresholds the engine ships with.
func DefaultConfig() Config {
	fillers := make([]string, len(DefaultFillerTokens))
	copy(fillers, DefaultFillerTokens)
	return Config{
		MinChars:              6,
		ShortWordChars:        8,
		EarlyFrictionAttempts: 1,
		MaxAttemptsPerStep:    3,
		FillerTokens:          fillers,
	}
}

// Validate rejects limits the cascade cannot work with.
func (c Config) Validate() error {
	if c.MinChars <= 0 {
		return fmt.Errorf("min_chars must be > 0, got %d", c.MinChars)
	}
	if c.ShortWordChars <= 0 {
		return fmt.Errorf("short_word_chars must be > 0, got %d", c.ShortWordChars)
	}
	if c.EarlyFrictionAttempts < 0 {
		return fmt.Errorf("early_friction_attempts must be >= 0, got %d", c.EarlyFrictionAttempts)
	}
	if c.MaxAttemptsPerStep <= 0 {
		return fmt.Errorf("max_attempts_per_step must be > 0, got %d", c.MaxAttemptsPerStep)
	}
	if c.EarlyFrictionAttempts >= c.MaxAttemptsPerStep {
		return fmt.Errorf("early_friction_attempts (%d) must be below max_attempts_per_step (%d)",
			c.EarlyFrictionAttempts, c.MaxAttemptsPerStep)
	}
	return nil
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MinChars <= 0 {
		c.MinChars = def.MinChars
	}
	if c.ShortWordChars <= 0 {
		c.ShortWordChars = def.ShortWordChars
	}
	if c.EarlyFrictionAttempts < 0 {
		c.EarlyFrictionAttempts = def.EarlyFrictionAttempts
	}
	if c.MaxAttemptsPerStep <= 0 {
		c.MaxAttemptsPerStep = def.MaxAttemptsPerStep
	}
	if c.FillerTokens == nil {
		c.FillerTokens = def.FillerTokens
	}
	return c
}

// LoadConfigFile reads a YAML policy file. Keys absent from the file keep
// their default values.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading policy file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing policy file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid policy file: %w", err)
	}
	return cfg, nil
}

// LoadConfig builds the policy configuration from STUDYLOOP_POLICY_FILE
// (optional) and then environment overrides, falling back to defaults for
// any unset or invalid value.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("STUDYLOOP_POLICY_FILE"); path != "" {
		fromFile, err := LoadConfigFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = fromFile
	}

	applyIntEnv(&cfg.MinChars, "STUDYLOOP_MIN_CHARS", 1)
	applyIntEnv(&cfg.ShortWordChars, "STUDYLOOP_SHORT_WORD_CHARS", 1)
	applyIntEnv(&cfg.EarlyFrictionAttempts, "STUDYLOOP_EARLY_FRICTION_ATTEMPTS", 0)
	applyIntEnv(&cfg.MaxAttemptsPerStep, "STUDYLOOP_MAX_ATTEMPTS", 1)

	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid policy config: %w", err)
	}
	return cfg, nil
}

func applyIntEnv(dst *int, envName string, min int) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min {
		return
	}
	*dst = n
}
