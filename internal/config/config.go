// Package config loads the maze game settings from YAML files, a .env file and
// environment variables, and applies the named difficulty presets.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/gridmaze/internal/maze"
)

// ErrInvalidConfig is returned when a loaded configuration cannot be played.
var ErrInvalidConfig = errors.New("invalid configuration")

// MazeConfig is the on-disk configuration of the maze game.
type MazeConfig struct {
	Grid      GridConfig     `yaml:"grid"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Timing    TimingConfig   `yaml:"timing"`
}

// GridConfig sizes the board.
type GridConfig struct {
	Size          int `yaml:"size"`
	CellPixelSize int `yaml:"cell_pixel_size"` // desktop window only
}

// ObstacleConfig selects the placement policy and its parameters.
type ObstacleConfig struct {
	Policy               string          `yaml:"policy"` // "seeded" or "fixed"
	InitialCount         int             `yaml:"initial_count"`
	Fixed                []maze.Position `yaml:"fixed"`
	MaxPlacementAttempts int             `yaml:"max_placement_attempts"`
}

// TimingConfig holds the clock settings in milliseconds.
type TimingConfig struct {
	TickPeriodMS int `yaml:"tick_period_ms"`
	ResetDelayMS int `yaml:"reset_delay_ms"`
}

// TickPeriod returns the obstacle step interval.
func (t TimingConfig) TickPeriod() time.Duration {
	return time.Duration(t.TickPeriodMS) * time.Millisecond
}

// ResetDelay returns the pause between a win and the next board.
func (t TimingConfig) ResetDelay() time.Duration {
	return time.Duration(t.ResetDelayMS) * time.Millisecond
}

// Validate checks every field and converts the result to game rules.
func (c MazeConfig) Validate() error {
	if c.Grid.CellPixelSize <= 0 {
		return fmt.Errorf("config: cell_pixel_size %d must be positive: %w", c.Grid.CellPixelSize, ErrInvalidConfig)
	}
	if _, err := c.GameConfig(); err != nil {
		return err
	}
	return nil
}

// GameConfig converts the file settings to maze.Config and validates them.
func (c MazeConfig) GameConfig() (maze.Config, error) {
	policy, err := maze.ParsePolicy(c.Obstacles.Policy)
	if err != nil {
		return maze.Config{}, fmt.Errorf("config: obstacles.policy: %w", errors.Join(ErrInvalidConfig, err))
	}

	fixed := append([]maze.Position(nil), c.Obstacles.Fixed...)
	if policy == maze.PolicyFixedList && len(fixed) == 0 {
		fixed = maze.DefaultFixedObstacles()
	}

	gc := maze.Config{
		GridSize:             c.Grid.Size,
		Policy:               policy,
		InitialObstacles:     c.Obstacles.InitialCount,
		FixedObstacles:       fixed,
		TickPeriod:           c.Timing.TickPeriod(),
		ResetDelay:           c.Timing.ResetDelay(),
		MaxPlacementAttempts: c.Obstacles.MaxPlacementAttempts,
	}
	if err := gc.Validate(); err != nil {
		return maze.Config{}, fmt.Errorf("config: %w", errors.Join(ErrInvalidConfig, err))
	}
	if policy == maze.PolicyFixedList {
		for _, p := range fixed {
			if p.Row < 1 || p.Row > gc.GridSize-2 || p.Col < 1 || p.Col > gc.GridSize-2 {
				return maze.Config{}, fmt.Errorf("config: fixed obstacle %s outside the %dx%d interior: %w",
					p, gc.GridSize, gc.GridSize, ErrInvalidConfig)
			}
		}
	}
	return gc, nil
}
