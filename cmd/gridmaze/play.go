package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridmaze/internal/games/mazegame"
	"github.com/vovakirdan/gridmaze/internal/platform/tui"
	"github.com/vovakirdan/gridmaze/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in the terminal",
	Long: `Play the maze in the terminal. Without a game ID the menu opens.

Controls:
  Arrows/WASD/hjkl - Move
  P/Space          - Pause
  R                - Restart the run
  Ctrl+S           - Save a screenshot
  ?                - Toggle help
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slow obstacles, empty first board
  normal - One obstacle step per second
  hard   - Fast obstacles, two on the first board
  fixed  - The configured obstacle list, no ramp

Examples:
  gridmaze play
  gridmaze play maze --difficulty hard
  gridmaze play maze_fixed
  gridmaze play maze --config ./my-maze.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runMenu(cmd, args)
	}

	gameID := args[0]
	if _, ok := registry.Lookup(gameID); !ok {
		return fmt.Errorf("unknown game %q; run 'gridmaze list' to see available games", gameID)
	}

	// The alt screen owns stdout, so logs only go to --log-file.
	logger, closeLog, err := newLogger("gridmaze", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	applyGameFlags()
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	if mg, ok := game.(*mazegame.Game); ok {
		// Reset runs inside the program; report bad settings once it exits.
		defer func() {
			if cfgErr := mg.ConfigError(); cfgErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: settings fell back to defaults: %v\n", cfgErr)
			}
		}()
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return tui.Run(game, store, terminalConfig(),
		tui.WithLogger(logger),
		tui.WithPlayer(os.Getenv("USER")),
	)
}
