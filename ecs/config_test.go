package ecs_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/framestep/ecs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := ecs.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, ecs.DefaultConfig(), cfg)
		assert.Equal(t, time.Second/60, cfg.TickInterval())
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("FRAMESTEP_LOG_LEVEL", "warn")
		t.Setenv("FRAMESTEP_PRETTY_LOG", "true")
		t.Setenv("FRAMESTEP_TICK_RATE", "20")

		cfg, err := ecs.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.True(t, cfg.PrettyLog)
		assert.Equal(t, 50*time.Millisecond, cfg.TickInterval())
	})

	t.Run("invalid values", func(t *testing.T) {
		for name, env := range map[string][2]string{
			"log level":  {"FRAMESTEP_LOG_LEVEL", "loud"},
			"capacity":   {"FRAMESTEP_ENTITY_CAPACITY", "-1"},
			"tick rate":  {"FRAMESTEP_TICK_RATE", "0"},
			"not an int": {"FRAMESTEP_ENTITY_CAPACITY", "many"},
		} {
			t.Run(name, func(t *testing.T) {
				t.Setenv(env[0], env[1])
				_, err := ecs.LoadConfig()
				assert.Error(t, err)
			})
		}
	})
}

func TestConfigNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := ecs.DefaultConfig()
	cfg.LogLevel = "warn"

	logger := cfg.NewLogger(&buf)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	logger.Info().Msg("dropped")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("kept")
	assert.Contains(t, buf.String(), `"message":"kept"`)
	assert.Contains(t, buf.String(), `"time"`)

	buf.Reset()
	cfg.PrettyLog = true
	pretty := cfg.NewLogger(&buf)
	pretty.Error().Msg("pretty")
	assert.Contains(t, buf.String(), "pretty")
	assert.NotContains(t, buf.String(), `"message"`)
}
