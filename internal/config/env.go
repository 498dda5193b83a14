package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override the file settings.
const (
	EnvGridSize         = "GRIDMAZE_GRID_SIZE"
	EnvCellPixelSize    = "GRIDMAZE_CELL_PIXEL_SIZE"
	EnvPolicy           = "GRIDMAZE_POLICY"
	EnvInitialObstacles = "GRIDMAZE_INITIAL_OBSTACLES"
	EnvTickPeriodMS     = "GRIDMAZE_TICK_PERIOD_MS"
	EnvResetDelayMS     = "GRIDMAZE_RESET_DELAY_MS"
)

// LookupFunc reports the value of a variable and whether it is set.
type LookupFunc func(key string) (string, bool)

// EnvLookup returns a lookup over the process environment backed by the
// variables of envFile. Process variables win. A missing default ./.env is not
// an error; a missing explicit file is.
func EnvLookup(envFile string) (LookupFunc, error) {
	path := envFile
	if path == "" {
		path = ".env"
	}

	fileVars, err := godotenv.Read(path)
	if err != nil {
		if envFile == "" && errors.Is(err, fs.ErrNotExist) {
			fileVars = nil
		} else {
			return nil, fmt.Errorf("config: read env file %s: %w", path, err)
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}, nil
}

// ApplyEnv copies the GRIDMAZE_* overrides into cfg.
func ApplyEnv(cfg *MazeConfig, lookup LookupFunc) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvGridSize, &cfg.Grid.Size},
		{EnvCellPixelSize, &cfg.Grid.CellPixelSize},
		{EnvInitialObstacles, &cfg.Obstacles.InitialCount},
		{EnvTickPeriodMS, &cfg.Timing.TickPeriodMS},
		{EnvResetDelayMS, &cfg.Timing.ResetDelayMS},
	}
	for _, v := range ints {
		raw, ok := lookup(v.key)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("config: %s must be an integer: %w", v.key, errors.Join(ErrInvalidConfig, err))
		}
		*v.dst = n
	}

	if raw, ok := lookup(EnvPolicy); ok && raw != "" {
		cfg.Obstacles.Policy = raw
	}
	return nil
}
