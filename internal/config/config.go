// Package config handles gridpath configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/gridpath/pkg/gridgen"
)

// Config holds all gridpath settings.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Animation AnimationConfig `yaml:"animation"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GridConfig controls random grid generation.
type GridConfig struct {
	Size         int     `yaml:"size"`          // Rows and columns of generated grids
	BlockedRatio float64 `yaml:"blocked_ratio"` // Share of cells that are buildings
	Seed         *uint64 `yaml:"seed,omitempty"` // Unset picks a time-based seed
}

// AnimationConfig controls the path walker.
type AnimationConfig struct {
	StepInterval time.Duration `yaml:"step_interval"`
	Spaced       bool          `yaml:"spaced"` // Put a space between rendered cells
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Size:         20,
			BlockedRatio: gridgen.DefaultBlockedRatio,
		},
		Animation: AnimationConfig{
			StepInterval: 500 * time.Millisecond,
			Spaced:       true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the configuration for values the tools cannot use.
func (c *Config) Validate() error {
	var errs []error
	if c.Grid.Size <= 0 || c.Grid.Size > 4096 {
		errs = append(errs, fmt.Errorf("grid.size must be within [1, 4096], got %d", c.Grid.Size))
	}
	if err := (gridgen.Options{BlockedRatio: c.Grid.BlockedRatio}).Validate(); err != nil {
		errs = append(errs, fmt.Errorf("grid.blocked_ratio: %w", err))
	}
	if c.Animation.StepInterval <= 0 {
		errs = append(errs, fmt.Errorf("animation.step_interval must be positive, got %s", c.Animation.StepInterval))
	}
	return errors.Join(errs...)
}

// GenOptions returns generator options for the configured grid.
// Without a configured seed, one is derived from the current time.
func (c *Config) GenOptions() gridgen.Options {
	seed := uint64(time.Now().UnixNano())
	if c.Grid.Seed != nil {
		seed = *c.Grid.Seed
	}
	return gridgen.Options{
		Seed:         seed,
		BlockedRatio: c.Grid.BlockedRatio,
	}
}
