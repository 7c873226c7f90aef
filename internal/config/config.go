// Package config handles configuration loading using viper.
package config

import (
	"fmt"

	"github.com/wireview/wireview/internal/core"
	"github.com/wireview/wireview/internal/log"
	"github.com/wireview/wireview/internal/source"
)

// Config is the top-level configuration.
type Config struct {
	Capture source.Config     `mapstructure:"capture" yaml:"capture"`
	UI      UIConfig          `mapstructure:"ui" yaml:"ui"`
	Logger  *log.LoggerConfig `mapstructure:"logger" yaml:"logger"`
}

// UIConfig tunes the presentation loop.
type UIConfig struct {
	// TickRate is the render cadence in frames per second.
	TickRate int `mapstructure:"tick_rate" yaml:"tick_rate"`
	// MaxPackets caps the packet store; 0 keeps unlimited history.
	MaxPackets int `mapstructure:"max_packets" yaml:"max_packets"`
	// ResetOnSwitch discards history and counters when the active
	// interface changes. This is an explicit policy choice: the
	// alternative of retaining history tagged by interface is not
	// implemented.
	ResetOnSwitch bool `mapstructure:"reset_on_switch" yaml:"reset_on_switch"`
}

func (c *Config) Validate() error {
	if c.UI.TickRate <= 0 || c.UI.TickRate > 120 {
		return fmt.Errorf("%w: ui.tick_rate must be in (0, 120], got %d", core.ErrConfigInvalid, c.UI.TickRate)
	}
	if c.UI.MaxPackets < 0 {
		return fmt.Errorf("%w: ui.max_packets must be >= 0, got %d", core.ErrConfigInvalid, c.UI.MaxPackets)
	}
	if c.Capture.SnapLen < 0 {
		return fmt.Errorf("%w: capture.snap_len must be >= 0, got %d", core.ErrConfigInvalid, c.Capture.SnapLen)
	}
	return nil
}
