package notifications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/toastkit/pkg/config"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero group cap", func(c *Config) { c.MaxGroupMembers = 0 }, true},
		{"zero window", func(c *Config) { c.MaxVisibleStack = 0 }, true},
		{"zero delay", func(c *Config) { c.DefaultAutoCloseDelay = 0 }, true},
		{"empty channel", func(c *Config) { c.Channel = "" }, true},
		{"opacity above one", func(c *Config) { c.MinOpacity = 1.5 }, true},
		{"zero scale", func(c *Config) { c.MinScale = 0 }, true},
		{"negative offset", func(c *Config) { c.StackOffset = -1 }, true},
		{"window larger than cap", func(c *Config) { c.MaxVisibleStack = 10 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_FromEnvironment(t *testing.T) {
	t.Parallel()

	t.Run("defaults match DefaultConfig", func(t *testing.T) {
		t.Parallel()

		var cfg Config
		require.NoError(t, config.Load(&cfg, config.WithEnvironment(map[string]string{})))

		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Parallel()

		var cfg Config
		err := config.Load(&cfg,
			config.WithPrefix("TOAST_"),
			config.WithEnvironment(map[string]string{
				"TOAST_MAX_GROUP_MEMBERS":        "3",
				"TOAST_DEFAULT_AUTO_CLOSE_DELAY": "1500ms",
				"TOAST_CHANNEL":                  "basket",
				"TOAST_MIN_OPACITY":              "0.5",
			}),
		)
		require.NoError(t, err)

		assert.Equal(t, 3, cfg.MaxGroupMembers)
		assert.Equal(t, 1500*time.Millisecond, cfg.DefaultAutoCloseDelay)
		assert.Equal(t, "basket", cfg.Channel)
		assert.InDelta(t, 0.5, cfg.MinOpacity, 1e-9)
		assert.Equal(t, DefaultMaxVisibleStack, cfg.MaxVisibleStack)
		assert.NoError(t, cfg.Validate())
	})
}
