// Package config reads the CLI defaults from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrInvalid is returned when a parsed value is out of range.
var ErrInvalid = errors.New("config: invalid value")

// Config holds the settings cobra flags fall back to.
type Config struct {
	Output      string        `env:"FORMSTATE_OUTPUT"       envDefault:"json"`
	Delay       time.Duration `env:"FORMSTATE_DELAY"        envDefault:"1s"`
	MaxAttempts int           `env:"FORMSTATE_MAX_ATTEMPTS" envDefault:"3"`
	Verbose     bool          `env:"FORMSTATE_VERBOSE"      envDefault:"false"`
}

// Load parses the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// LoadFrom parses environment instead of the process environment.
func LoadFrom(environment map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports values no command can work with.
func (c Config) Validate() error {
	switch c.Output {
	case "json", "yaml", "form", "pretty":
	default:
		return fmt.Errorf("%w: output %q", ErrInvalid, c.Output)
	}
	if c.Delay < 0 {
		return fmt.Errorf("%w: delay %s", ErrInvalid, c.Delay)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts %d", ErrInvalid, c.MaxAttempts)
	}
	return nil
}
