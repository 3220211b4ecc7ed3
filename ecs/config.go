package ecs

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Config holds the configuration for a World instance.
// Configuration can be set via environment variables with the specified defaults.
type Config struct {
	// Minimum level of the world logger (trace, debug, info, warn, error).
	LogLevel string `env:"FRAMESTEP_LOG_LEVEL" envDefault:"info"`

	// Write human-readable console logs instead of JSON.
	PrettyLog bool `env:"FRAMESTEP_PRETTY_LOG" envDefault:"false"`

	// Panic on Tick before Initialize. When false the call is logged and skipped.
	StrictLifecycle bool `env:"FRAMESTEP_STRICT_LIFECYCLE" envDefault:"true"`

	// Initial number of entity slots and dense store capacity.
	EntityCapacity int `env:"FRAMESTEP_ENTITY_CAPACITY" envDefault:"1024"`

	// Ticks per second used by World.Run.
	TickRate float64 `env:"FRAMESTEP_TICK_RATE" envDefault:"60"`
}

// DefaultConfig returns the configuration used when nothing is set in the environment.
func DefaultConfig() Config {
	return Config{
		LogLevel:        "info",
		StrictLifecycle: true,
		EntityCapacity:  defaultEntityCapacity,
		TickRate:        60,
	}
}

// LoadConfig loads the world configuration from environment variables.
func LoadConfig() (Config, error) {
	cfg := Config{}

	if err := env.Parse(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse world config")
	}

	if err := cfg.validate(); err != nil {
		return cfg, eris.Wrap(err, "failed to validate config")
	}

	return cfg, nil
}

// validate performs validation on the loaded configuration.
func (cfg *Config) validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err != nil {
		return eris.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}
	if cfg.EntityCapacity <= 0 {
		return eris.New("entity capacity must be positive")
	}
	if cfg.TickRate <= 0 {
		return eris.New("tick rate must be positive")
	}
	return nil
}

// TickInterval converts TickRate into the period between ticks.
func (cfg *Config) TickInterval() time.Duration {
	if cfg.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Duration(float64(time.Second) / cfg.TickRate)
}

// NewLogger builds the world logger described by cfg, writing to out.
func (cfg *Config) NewLogger(out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	if out == nil {
		out = os.Stderr
	}
	if cfg.PrettyLog {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()
}
