// Package config loads server configuration from the environment
package config

import (
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/emberfell/campaign-api/internal/errors"
)

// Config holds everything the server needs to start
type Config struct {
	// HTTPAddr is the listen address for the REST API
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// RedisAddr is the host:port of the Redis instance holding encounter state
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	// RedisPassword is optional; empty means no AUTH
	RedisPassword string `env:"REDIS_PASSWORD"`

	// SQLitePath is the campaign database file; ":memory:" works for local runs
	SQLitePath string `env:"SQLITE_PATH" envDefault:"campaigns.db"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LogFormat is "json" or "text"
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads configuration from the environment and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field values beyond what env parsing enforces
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.HTTPAddr == "" {
		vb.RequiredField("HTTPAddr")
	}
	if c.RedisAddr == "" {
		vb.RequiredField("RedisAddr")
	}
	if c.SQLitePath == "" {
		vb.RequiredField("SQLitePath")
	}
	if _, err := c.SlogLevel(); err != nil {
		vb.Fieldf("LogLevel", "must be debug, info, warn, or error, got %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		vb.Fieldf("LogFormat", "must be json or text, got %q", c.LogFormat)
	}

	return vb.Build()
}

// SlogLevel maps the configured level string to a slog.Level
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, errors.InvalidArgumentf("unknown log level %q", c.LogLevel)
	}
}
