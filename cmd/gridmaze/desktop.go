package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridmaze/internal/maze"
	"github.com/vovakirdan/gridmaze/internal/platform/desktop"
	"github.com/vovakirdan/gridmaze/internal/platform/desktop/scene"
	"github.com/vovakirdan/gridmaze/internal/transport/websocket"
)

var (
	flagWatchURL string
	flagWSAddr   string
)

var desktopCmd = &cobra.Command{
	Use:   "desktop",
	Short: "Play or spectate in a desktop window",
	Long: `Open a window that draws the maze with one square of cell_pixel_size
pixels per cell.

Without --watch the window plays a local game; with --ws the game is also
broadcast to spectators. With --watch the window follows a broadcast game.

Controls:
  Arrows/WASD - Move
  N           - New board
  R           - Restart the run
  Esc         - Quit

Examples:
  gridmaze desktop
  gridmaze desktop --ws :8080
  gridmaze desktop --watch ws://localhost:8080/ws`,
	RunE: runDesktop,
}

func init() {
	desktopCmd.Flags().StringVar(&flagWatchURL, "watch", "", "Spectate the game broadcast at this websocket URL")
	desktopCmd.Flags().StringVar(&flagWSAddr, "ws", "", "Broadcast the game to spectators on this address")
}

func runDesktop(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger("gridmaze-desktop", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := desktop.Options{CellSize: cfg.Grid.CellPixelSize, Logger: logger}
	if flagWatchURL != "" {
		opts.Title = "Grid Maze - " + flagWatchURL
		return desktop.Watch(ctx, flagWatchURL, opts)
	}

	board := scene.NewBoard()
	engineOpts := []maze.EngineOption{maze.WithRenderer(board), maze.WithNotifier(board)}
	if flagWSAddr != "" {
		hub := websocket.NewHub(websocket.WithLogger(logger))
		engineOpts = append(engineOpts, maze.WithRenderer(hub), maze.WithNotifier(hub))
		go serveSpectators(ctx, flagWSAddr, hub, logger)
	}

	engine, err := newEngine(cfg, logger, engineOpts...)
	if err != nil {
		return err
	}
	defer engine.Close()

	return desktop.Play(ctx, engine, board, opts)
}

// serveSpectators runs the websocket feed until ctx ends.
func serveSpectators(ctx context.Context, addr string, hub *websocket.Hub, logger *log.Logger) {
	if err := websocket.Serve(ctx, addr, hub); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("spectator feed stopped", "error", err)
	}
}
