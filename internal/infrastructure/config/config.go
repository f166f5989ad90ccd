// Package config loads runtime settings from the environment and an optional .env file
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/damon-houk/expense-tracker/internal/infrastructure/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	DataDir         string
	Addr            string
	LogLevel        logger.Level
	SyncWrites      bool
	ShutdownTimeout time.Duration
}

// Load reads configuration from EXPENSES_* environment variables, with values
// from a .env file in the working directory used when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("EXPENSES")
	v.AutomaticEnv()

	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("ADDR", "127.0.0.1:8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SYNC_WRITES", true)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	level, err := logger.ParseLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:         strings.TrimSpace(v.GetString("DATA_DIR")),
		Addr:            strings.TrimSpace(v.GetString("ADDR")),
		LogLevel:        level,
		SyncWrites:      v.GetBool("SYNC_WRITES"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	var errs []error

	if c.DataDir == "" {
		errs = append(errs, errors.New("data directory must not be empty"))
	}
	if c.Addr == "" {
		errs = append(errs, errors.New("listen address must not be empty"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
