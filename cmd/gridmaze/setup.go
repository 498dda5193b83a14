package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/gridmaze/internal/config"
	"github.com/vovakirdan/gridmaze/internal/core"
	"github.com/vovakirdan/gridmaze/internal/games/mazegame"
	"github.com/vovakirdan/gridmaze/internal/maze"
	"github.com/vovakirdan/gridmaze/internal/storage"
)

// newLogger builds the command logger. Without --log-file it writes to
// fallback; pass io.Discard when the terminal belongs to a full-screen program.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	w := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// applyGameFlags hands the global settings to the terminal game before it is created.
func applyGameFlags() {
	mazegame.SetConfigPath(flagConfig)
	mazegame.SetEnvFile(flagEnvFile)
	mazegame.SetDifficultyPreset(flagDifficulty)
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Games still run without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database; results will not be saved", "error", err)
		return nil
	}
	return store
}

// resolveConfig loads the settings the engine-driven commands play with.
func resolveConfig() (config.MazeConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.MazeConfig{}, err
	}
	return config.Resolve(config.Options{
		Path:    flagConfig,
		Preset:  preset,
		EnvFile: flagEnvFile,
	})
}

// newEngine builds a game engine from the resolved settings.
func newEngine(cfg config.MazeConfig, logger *log.Logger, opts ...maze.EngineOption) (*maze.Engine, error) {
	rules, err := cfg.GameConfig()
	if err != nil {
		return nil, err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	state, err := maze.New(rules, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}

	logger.Debug("engine created", "size", rules.GridSize, "policy", rules.Policy, "seed", seed)
	opts = append(opts, maze.WithLogger(logger))
	return maze.NewEngine(state, opts...), nil
}
