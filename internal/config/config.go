package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultBaseURL    = "http://127.0.0.1:8000"
	DefaultAddr       = "127.0.0.1:8000"
	DefaultDatabase   = "quizdb"
	DefaultCollection = "quizzes"
	DefaultCORSOrigin = "http://localhost:3000"
)

// Config holds application configuration loaded from .env, an optional
// verity.yaml and environment variables, in increasing precedence.
type Config struct {
	Env          string        `mapstructure:"env"`           // local, dev, production
	BaseURL      string        `mapstructure:"base_url"`      // quiz backend the client talks to
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"` // per-request client timeout, 0 = none
	Server       Server        `mapstructure:"server"`
	Mongo        Mongo         `mapstructure:"mongo"`
	Log          Log           `mapstructure:"log"`
	LLM          LLM           `mapstructure:"llm"`
}

// Server configures the backend started by `verity serve`.
type Server struct {
	Addr        string   `mapstructure:"addr"`
	DBPath      string   `mapstructure:"db"` // SQLite file, empty = default location
	CORSOrigins []string `mapstructure:"-"`
}

// Mongo selects the MongoDB question bank. An empty URL means SQLite.
type Mongo struct {
	URL        string `mapstructure:"-"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

// Log configures zap.
type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // TUI log file, empty = default location
}

// LLM holds explanation provider settings. API keys never come from the
// config file.
type LLM struct {
	Provider        string        `mapstructure:"provider"`
	Model           string        `mapstructure:"model"`
	Timeout         time.Duration `mapstructure:"timeout"`
	AnthropicAPIKey string        `mapstructure:"-"`
	OpenAIAPIKey    string        `mapstructure:"-"`
	OpenAIBaseURL   string        `mapstructure:"-"`
	GeminiAPIKey    string        `mapstructure:"-"`
}

// Enabled reports whether an explanation provider is configured.
func (l LLM) Enabled() bool {
	return l.Provider != ""
}

// IsProduction reports whether logs should be production-formatted.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration. configFile, when non-empty, names an explicit
// YAML file; otherwise verity.yaml is looked up in the working directory
// and the user config directory and is optional.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("verity")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "verity"))
		}
	}

	v.SetDefault("env", "local")
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("fetch_timeout", "0s")
	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("server.db", "")
	v.SetDefault("server.cors_origins", DefaultCORSOrigin)
	v.SetDefault("mongo.database", DefaultDatabase)
	v.SetDefault("mongo.collection", DefaultCollection)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.timeout", "30s")

	bindings := map[string]string{
		"env":                 "VERITY_ENV",
		"base_url":            "BASE_URL",
		"fetch_timeout":       "FETCH_TIMEOUT",
		"server.addr":         "VERITY_ADDR",
		"server.db":           "VERITY_DB",
		"server.cors_origins": "CORS_ORIGINS",
		"mongo.url":           "MONGO_URL",
		"mongo.database":      "MONGO_DATABASE",
		"mongo.collection":    "MONGO_COLLECTION",
		"log.level":           "VERITY_LOG_LEVEL",
		"log.file":            "VERITY_LOG_FILE",
		"llm.provider":        "VERITY_LLM_PROVIDER",
		"llm.model":           "VERITY_LLM_MODEL",
		"llm.timeout":         "VERITY_LLM_TIMEOUT",
		"anthropic_api_key":   "ANTHROPIC_API_KEY",
		"openai_api_key":      "OPENAI_API_KEY",
		"openai_base_url":     "OPENAI_BASE_URL",
		"gemini_api_key":      "GEMINI_API_KEY",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.Server.CORSOrigins = splitList(v.GetString("server.cors_origins"))
	cfg.Mongo.URL = v.GetString("mongo.url")
	cfg.LLM.AnthropicAPIKey = v.GetString("anthropic_api_key")
	cfg.LLM.OpenAIAPIKey = v.GetString("openai_api_key")
	cfg.LLM.OpenAIBaseURL = v.GetString("openai_base_url")
	cfg.LLM.GeminiAPIKey = v.GetString("gemini_api_key")
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = cfg.LLM.discoverProvider()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// discoverProvider picks the first provider whose API key is present,
// in the order Gemini, OpenAI, Anthropic.
func (l LLM) discoverProvider() string {
	switch {
	case l.GeminiAPIKey != "":
		return "gemini"
	case l.OpenAIAPIKey != "":
		return "openai"
	case l.AnthropicAPIKey != "":
		return "anthropic"
	}
	return ""
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		return errors.New("BASE_URL must not be empty")
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("FETCH_TIMEOUT must not be negative, got %s", c.FetchTimeout)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
