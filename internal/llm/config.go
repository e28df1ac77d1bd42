package llm

import (
	"fmt"
	"time"

	"github.com/abhisek/verity/internal/config"
)

// Config selects and configures a single provider.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini" or "mock".
	Provider string

	// Model is a friendly name or a raw model ID. Empty picks the
	// provider default.
	Model string

	APIKey string

	// BaseURL points the openai provider at a compatible API such as
	// OpenRouter or a local server.
	BaseURL string

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration

	Retry RetryConfig
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

var defaultModels = map[string]string{
	"anthropic": "claude-haiku",
	"openai":    "gpt-4o-mini",
	"gemini":    "gemini-flash",
	"mock":      "mock",
}

// DefaultRetry is the retry policy used unless overridden.
func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2.0,
	}
}

// FromSettings builds a Config for the provider chosen in s, picking the
// matching API key.
func FromSettings(s config.LLM) Config {
	cfg := Config{
		Provider: s.Provider,
		Model:    s.Model,
		Timeout:  s.Timeout,
		Retry:    DefaultRetry(),
	}

	switch s.Provider {
	case "anthropic":
		cfg.APIKey = s.AnthropicAPIKey
	case "openai":
		cfg.APIKey = s.OpenAIAPIKey
		cfg.BaseURL = s.OpenAIBaseURL
	case "gemini":
		cfg.APIKey = s.GeminiAPIKey
	}

	if cfg.Model == "" {
		cfg.Model = defaultModels[s.Provider]
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return cfg
}

// Validate checks that the selected provider has what it needs.
func (c Config) Validate() error {
	if _, ok := defaultModels[c.Provider]; !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Provider != "mock" && c.APIKey == "" {
		return fmt.Errorf("%s API key is required", c.Provider)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("LLM timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}
