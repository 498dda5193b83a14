package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridmaze/internal/maze"
	mcpserver "github.com/vovakirdan/gridmaze/internal/transport/mcp"
	"github.com/vovakirdan/gridmaze/internal/transport/websocket"
)

var (
	flagAutoTick bool
	flagMCPWS    string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the game as MCP tools over stdio",
	Long: `Run one game behind a Model Context Protocol server on stdin/stdout so an
agent can read the board and move the player.

By default the obstacles only move when the agent calls the tick tool. With
--auto-tick the game clock runs on its own. With --ws the game is broadcast
to spectators, e.g. 'gridmaze desktop --watch ws://localhost:8080/ws'.

Logs go to stderr or --log-file; stdout carries the protocol.

Examples:
  gridmaze mcp
  gridmaze mcp --auto-tick --ws :8080`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().BoolVar(&flagAutoTick, "auto-tick", false, "Move obstacles on the configured tick period")
	mcpCmd.Flags().StringVar(&flagMCPWS, "ws", "", "Broadcast the game to spectators on this address")
}

func runMCP(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger("gridmaze-mcp", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var hub *websocket.Hub
	var engineOpts []maze.EngineOption
	if flagMCPWS != "" {
		hub = websocket.NewHub(websocket.WithLogger(logger))
		engineOpts = append(engineOpts, maze.WithRenderer(hub), maze.WithNotifier(hub))
		go serveSpectators(ctx, flagMCPWS, hub, logger)
	}

	engine, err := newEngine(cfg, logger, engineOpts...)
	if err != nil {
		return err
	}
	defer engine.Close()

	if flagAutoTick {
		go func() {
			if err := engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("engine clock stopped", "error", err)
			}
		}()
	} else if hub != nil {
		// Spectators joining before the first tool call still get a board.
		hub.Render(engine.Frame())
	}

	return mcpserver.NewServer(engine, mcpserver.WithLogger(logger)).ServeStdio()
}
