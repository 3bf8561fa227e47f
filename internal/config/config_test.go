package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
		"MOONALYZER_OUTPUT_DIR", "MOONALYZER_VSOP87_DIR", "MOONALYZER_ROOT",
		"MOONALYZER_PORT", "MOONALYZER_SCHEDULE",
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 60*time.Second, cfg.OpenAI.Timeout)
	assert.Equal(t, 2, cfg.OpenAI.MaxAttempts)
	assert.Equal(t, "data", cfg.Forecast.OutputDir)
	assert.Equal(t, 3, cfg.Forecast.DigestPlanets)
	assert.Equal(t, 5, cfg.Forecast.DigestAspects)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, ".", cfg.Server.Root)
	assert.Equal(t, ":8000", cfg.ServerAddr())
	assert.Equal(t, "5 0 * * *", cfg.Schedule.Cron)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Telegram.Enabled())
	assert.Empty(t, cfg.Ephemeris.VSOP87Dir)
}

func TestRequireAPIKey(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, errors.Is(cfg.RequireAPIKey(), ErrMissingAPIKey))

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.NoError(t, cfg.RequireAPIKey())
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("MOONALYZER_OUTPUT_DIR", "/tmp/forecasts")
	t.Setenv("MOONALYZER_PORT", "9090")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-10042")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, "/tmp/forecasts", cfg.Forecast.OutputDir)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, int64(-10042), cfg.Telegram.ChatID)
	assert.True(t, cfg.Telegram.Enabled())
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestInvalidEnv(t *testing.T) {
	t.Run("port", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MOONALYZER_PORT", "eighty")
		_, err := Load("")
		assert.ErrorContains(t, err, "MOONALYZER_PORT")
	})

	t.Run("chat id", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TELEGRAM_CHAT_ID", "channel")
		_, err := Load("")
		assert.ErrorContains(t, err, "TELEGRAM_CHAT_ID")
	})

	t.Run("log format", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LOG_FORMAT", "xml")
		_, err := Load("")
		assert.ErrorContains(t, err, "validate config")
	})
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "moonalyzer.yaml")
	err := os.WriteFile(path, []byte(`
openai:
  model: gpt-4.1-mini
  timeout: 15s
  max_attempts: 3
forecast:
  output_dir: out
  digest_aspects: 7
server:
  port: 8123
`), 0o644)
	require.NoError(t, err)

	t.Setenv("MOONALYZER_PORT", "8124")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4.1-mini", cfg.OpenAI.Model)
	assert.Equal(t, 15*time.Second, cfg.OpenAI.Timeout)
	assert.Equal(t, 3, cfg.OpenAI.MaxAttempts)
	assert.Equal(t, "out", cfg.Forecast.OutputDir)
	assert.Equal(t, 7, cfg.Forecast.DigestAspects)
	assert.Equal(t, 3, cfg.Forecast.DigestPlanets, "unset keys keep defaults")
	assert.Equal(t, 8124, cfg.Server.Port, "environment wins over file")
}

func TestLoadYAMLKeepsExplicitZeros(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "moonalyzer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
openai:
  temperature: 0
forecast:
  digest_planets: 0
  digest_aspects: 0
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.OpenAI.Temperature)
	assert.Zero(t, cfg.Forecast.DigestPlanets)
	assert.Zero(t, cfg.Forecast.DigestAspects)
	assert.Equal(t, 600, cfg.OpenAI.MaxTokens, "unset fields still get defaults")
	assert.Equal(t, "data", cfg.Forecast.OutputDir)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")
}
