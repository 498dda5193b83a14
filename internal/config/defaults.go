package config

import (
	_ "embed"

	"github.com/vovakirdan/gridmaze/internal/maze"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// DefaultMazeConfig returns the built-in settings: the classic 8x8 room with a
// one-second clock and an empty first board.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Grid: GridConfig{
			Size:          8,
			CellPixelSize: 40,
		},
		Obstacles: ObstacleConfig{
			Policy:               "seeded",
			InitialCount:         0,
			Fixed:                maze.DefaultFixedObstacles(),
			MaxPlacementAttempts: maze.DefaultMaxPlacementAttempts,
		},
		Timing: TimingConfig{
			TickPeriodMS: 1000,
			ResetDelayMS: 1000,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultMazeYAML
}
