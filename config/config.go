// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the service settings read from environment variables.
type Config struct {
	// Server
	Port               int      `env:"PORT" envDefault:"8080"`
	CorsAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// Storage
	DBPath       string `env:"DB_PATH" envDefault:"invoices.db"`
	HistoryLimit int    `env:"HISTORY_LIMIT" envDefault:"50"`

	// Presentation
	CurrencyPrefix string `env:"CURRENCY_PREFIX" envDefault:"RS."`
	BusinessName   string `env:"BUSINESS_NAME" envDefault:"Unix-Net Technologies"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.HistoryLimit < 1 {
		return nil, fmt.Errorf("parse config: HISTORY_LIMIT must be positive, got %d", cfg.HistoryLimit)
	}
	return cfg, nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
