package app

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Config carries the environment-driven settings. Flags override these.
type Config struct {
	DBPath   string `envconfig:"DB"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"warn"`
}

// LoadConfig reads FITLOG_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("fitlog", &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment config: %w", err)
	}
	return cfg, nil
}

// Level parses the configured log level, falling back to warn.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return lvl
}
