package main

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridmaze/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a profile and difficulty interactively",
	Long: `Start in interactive menu mode.

After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k     - Choose profile
  Left/Right/h/l  - Choose difficulty
  Enter/Space     - Play
  Tab             - Scoreboard
  Q               - Quit

Examples:
  gridmaze menu
  gridmaze menu --fps 60
  gridmaze menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger("gridmaze", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	applyGameFlags()
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	for {
		res, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		// Pick up size changes made while the menu was open.
		cfg = res.Config

		if res.Quit {
			return nil
		}

		if res.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := res.CreateGame()
		if err != nil {
			logger.Error("cannot create game", "game", res.GameID, "error", err)
			continue
		}

		cfg.Seed = time.Now().UnixNano()
		if flagSeed != 0 {
			cfg.Seed = flagSeed
		}
		if err := tui.Run(game, store, cfg,
			tui.WithLogger(logger),
			tui.WithPlayer(os.Getenv("USER")),
		); err != nil {
			return err
		}
	}
}
