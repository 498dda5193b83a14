package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset is a named set of overrides applied on top of the loaded file.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // fixed obstacle list, no ramp
)

// Presets lists the accepted preset names.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset accepts a preset name; the empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return "", nil
	}
	for _, known := range Presets() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q: %w", s, ErrInvalidConfig)
}

// IsFixedPreset returns true if the preset disables the obstacle ramp.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies cfg for a difficulty preset. Unknown or empty presets
// leave cfg unchanged.
func ApplyPreset(cfg *MazeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timing.TickPeriodMS = 1500
		cfg.Obstacles.InitialCount = 0
	case DifficultyNormal:
		cfg.Timing.TickPeriodMS = 1000
		cfg.Obstacles.InitialCount = 0
	case DifficultyHard:
		cfg.Timing.TickPeriodMS = 600
		cfg.Obstacles.InitialCount = 2
	case DifficultyFixed:
		cfg.Obstacles.Policy = "fixed"
	}
}
