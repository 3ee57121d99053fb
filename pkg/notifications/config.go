package notifications

import (
	"errors"
	"fmt"
	"time"
)

// Default limits and style constants.
const (
	DefaultMaxGroupMembers = 7
	DefaultMaxVisibleStack = 5
	DefaultAutoCloseDelay  = 5 * time.Second
	DefaultChannel         = "cart"
	DefaultStackOffset     = 8.0
	DefaultStackScaleStep  = 0.04
	DefaultMinScale        = 0.8
	DefaultOpacityStep     = 0.15
	DefaultMinOpacity      = 0.4
	DefaultRowHeight       = 76.0
	DefaultExpandedOpacity = 1.0
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid notifications config")

// Config holds the tunable limits and stack geometry.
// Field tags follow github.com/caarlos0/env so the struct can be loaded with pkg/config.
type Config struct {
	// MaxGroupMembers is the hard cap on members kept per group; older ones are evicted.
	MaxGroupMembers int `env:"MAX_GROUP_MEMBERS" envDefault:"7"`
	// MaxVisibleStack is how many members of a group are rendered.
	MaxVisibleStack int `env:"MAX_VISIBLE_STACK" envDefault:"5"`
	// DefaultAutoCloseDelay applies when a notification auto-closes without an explicit delay.
	DefaultAutoCloseDelay time.Duration `env:"DEFAULT_AUTO_CLOSE_DELAY" envDefault:"5s"`
	// Channel is the group used by Facade.CreateForChannel.
	Channel string `env:"CHANNEL" envDefault:"cart"`

	StackOffset     float64 `env:"STACK_OFFSET" envDefault:"8"`
	StackScaleStep  float64 `env:"STACK_SCALE_STEP" envDefault:"0.04"`
	MinScale        float64 `env:"MIN_SCALE" envDefault:"0.8"`
	OpacityStep     float64 `env:"OPACITY_STEP" envDefault:"0.15"`
	MinOpacity      float64 `env:"MIN_OPACITY" envDefault:"0.4"`
	RowHeight       float64 `env:"ROW_HEIGHT" envDefault:"76"`
	ExpandedOpacity float64 `env:"EXPANDED_OPACITY" envDefault:"1"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		MaxGroupMembers:       DefaultMaxGroupMembers,
		MaxVisibleStack:       DefaultMaxVisibleStack,
		DefaultAutoCloseDelay: DefaultAutoCloseDelay,
		Channel:               DefaultChannel,
		StackOffset:           DefaultStackOffset,
		StackScaleStep:        DefaultStackScaleStep,
		MinScale:              DefaultMinScale,
		OpacityStep:           DefaultOpacityStep,
		MinOpacity:            DefaultMinOpacity,
		RowHeight:             DefaultRowHeight,
		ExpandedOpacity:       DefaultExpandedOpacity,
	}
}

// Validate checks the limits and geometry for values the engine cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.MaxGroupMembers < 1 {
		errs = append(errs, fmt.Errorf("max group members must be positive, got %d", c.MaxGroupMembers))
	}
	if c.MaxVisibleStack < 1 {
		errs = append(errs, fmt.Errorf("max visible stack must be positive, got %d", c.MaxVisibleStack))
	}
	if c.DefaultAutoCloseDelay <= 0 {
		errs = append(errs, fmt.Errorf("default auto close delay must be positive, got %s", c.DefaultAutoCloseDelay))
	}
	if c.Channel == "" {
		errs = append(errs, errors.New("channel must not be empty"))
	}
	if c.MinOpacity < 0 || c.MinOpacity > 1 {
		errs = append(errs, fmt.Errorf("min opacity must be within [0,1], got %g", c.MinOpacity))
	}
	if c.ExpandedOpacity < 0 || c.ExpandedOpacity > 1 {
		errs = append(errs, fmt.Errorf("expanded opacity must be within [0,1], got %g", c.ExpandedOpacity))
	}
	if c.MinScale <= 0 || c.MinScale > 1 {
		errs = append(errs, fmt.Errorf("min scale must be within (0,1], got %g", c.MinScale))
	}
	if c.OpacityStep < 0 || c.StackScaleStep < 0 || c.StackOffset < 0 || c.RowHeight < 0 {
		errs = append(errs, errors.New("stack steps, offset and row height must not be negative"))
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
}
