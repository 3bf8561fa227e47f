package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey is returned when no OpenAI credential is configured.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is required")

type Config struct {
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Forecast  ForecastConfig  `yaml:"forecast"`
	Ephemeris EphemerisConfig `yaml:"ephemeris"`
	Server    ServerConfig    `yaml:"server"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Log       LogConfig       `yaml:"log"`
}

type OpenAIConfig struct {
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model" default:"gpt-4o-mini" validate:"required"`
	Temperature float32       `yaml:"temperature" default:"0.9" validate:"gte=0,lte=2"`
	MaxTokens   int           `yaml:"max_tokens" default:"600" validate:"gte=0"`
	Timeout     time.Duration `yaml:"timeout" default:"60s" validate:"gt=0"`
	// MaxAttempts bounds how often a reply that fails to parse is requested again.
	MaxAttempts int `yaml:"max_attempts" default:"2" validate:"min=1,max=5"`
}

type ForecastConfig struct {
	OutputDir     string `yaml:"output_dir" default:"data" validate:"required"`
	DigestPlanets int    `yaml:"digest_planets" default:"3" validate:"min=0,max=7"`
	DigestAspects int    `yaml:"digest_aspects" default:"5" validate:"min=0,max=21"`
}

type EphemerisConfig struct {
	// VSOP87Dir holds VSOP87B.* files; empty selects the built-in mean elements.
	VSOP87Dir string `yaml:"vsop87_dir"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port" default:"8000" validate:"min=1,max=65535"`
	Root            string        `yaml:"root" default:"." validate:"required"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
}

type ScheduleConfig struct {
	Cron string `yaml:"cron" default:"5 0 * * *" validate:"required"`
}

type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

// Enabled reports whether forecasts should be broadcast to Telegram.
func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `yaml:"format" default:"console" validate:"oneof=console json"`
}

var validate = validator.New()

// Load builds the configuration from struct defaults, an optional YAML file and the
// environment, in increasing precedence. The .env file must already be loaded.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	// Defaults go in first so that explicit zero values in the file survive.
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromEnv() error {
	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		c.OpenAI.APIKey = val
	}
	if val := os.Getenv("OPENAI_MODEL"); val != "" {
		c.OpenAI.Model = val
	}
	if val := os.Getenv("OPENAI_BASE_URL"); val != "" {
		c.OpenAI.BaseURL = val
	}

	if val := os.Getenv("MOONALYZER_OUTPUT_DIR"); val != "" {
		c.Forecast.OutputDir = val
	}
	if val := os.Getenv("MOONALYZER_VSOP87_DIR"); val != "" {
		c.Ephemeris.VSOP87Dir = val
	}
	if val := os.Getenv("MOONALYZER_ROOT"); val != "" {
		c.Server.Root = val
	}
	if val := os.Getenv("MOONALYZER_PORT"); val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid MOONALYZER_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if val := os.Getenv("MOONALYZER_SCHEDULE"); val != "" {
		c.Schedule.Cron = val
	}

	if val := os.Getenv("TELEGRAM_BOT_TOKEN"); val != "" {
		c.Telegram.Token = val
	}
	if val := os.Getenv("TELEGRAM_CHAT_ID"); val != "" {
		chatID, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.Telegram.ChatID = chatID
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
	return nil
}

// RequireAPIKey fails when the forecast cannot be generated for lack of a credential.
func (c *Config) RequireAPIKey() error {
	if c.OpenAI.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// ServerAddr is the host:port the static server binds.
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
