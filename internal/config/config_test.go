package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allEnv = []string{
	"VERITY_ENV", "BASE_URL", "FETCH_TIMEOUT", "VERITY_ADDR", "VERITY_DB", "CORS_ORIGINS",
	"MONGO_URL", "MONGO_DATABASE", "MONGO_COLLECTION", "VERITY_LOG_LEVEL", "VERITY_LOG_FILE",
	"VERITY_LLM_PROVIDER", "VERITY_LLM_MODEL", "VERITY_LLM_TIMEOUT",
	"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "OPENAI_BASE_URL", "GEMINI_API_KEY",
}

// cleanEnv blanks every recognized variable and moves into an empty
// directory so no .env or verity.yaml is picked up.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range allEnv {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	cleanEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Zero(t, cfg.FetchTimeout)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, []string{DefaultCORSOrigin}, cfg.Server.CORSOrigins)
	assert.Empty(t, cfg.Mongo.URL)
	assert.Equal(t, "quizdb", cfg.Mongo.Database)
	assert.Equal(t, "quizzes", cfg.Mongo.Collection)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.LLM.Enabled())
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	cleanEnv(t)
	t.Setenv("BASE_URL", "http://quiz.example:9000/")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("MONGO_URL", "mongodb://localhost:27017")
	t.Setenv("VERITY_ENV", "production")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://quiz.example:9000", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URL)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_DotEnvFile(t *testing.T) {
	cleanEnv(t)
	// godotenv only fills variables that are unset.
	os.Unsetenv("BASE_URL")
	t.Cleanup(func() { os.Unsetenv("BASE_URL") })
	require.NoError(t, os.WriteFile(".env", []byte("BASE_URL=http://from-dotenv:8000\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://from-dotenv:8000", cfg.BaseURL)
}

func TestLoad_ConfigFile(t *testing.T) {
	cleanEnv(t)
	path := filepath.Join(t.TempDir(), "verity.yaml")
	yaml := "base_url: http://file:1234\nserver:\n  addr: 0.0.0.0:9999\nllm:\n  provider: mock\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://file:1234", cfg.BaseURL)
	assert.Equal(t, "0.0.0.0:9999", cfg.Server.Addr)
	assert.Equal(t, "mock", cfg.LLM.Provider)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	cleanEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestLoad_NegativeTimeoutRejected(t *testing.T) {
	cleanEnv(t)
	t.Setenv("FETCH_TIMEOUT", "-1s")

	_, err := Load("")

	assert.ErrorContains(t, err, "FETCH_TIMEOUT")
}

func TestLoad_DiscoversProviderFromKeys(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"none", nil, ""},
		{"anthropic", map[string]string{"ANTHROPIC_API_KEY": "a"}, "anthropic"},
		{"openai beats anthropic", map[string]string{"ANTHROPIC_API_KEY": "a", "OPENAI_API_KEY": "o"}, "openai"},
		{"gemini first", map[string]string{"OPENAI_API_KEY": "o", "GEMINI_API_KEY": "g"}, "gemini"},
		{"explicit wins", map[string]string{"GEMINI_API_KEY": "g", "VERITY_LLM_PROVIDER": "anthropic"}, "anthropic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load("")
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.LLM.Provider)
		})
	}
}
