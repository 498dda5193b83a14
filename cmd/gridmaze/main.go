// gridmaze is a grid maze game: walk from the entrance to the exit while
// obstacles wander the room.
//
// Usage:
//
//	gridmaze list              - List game profiles
//	gridmaze play [game]       - Play in the terminal (menu when no game is given)
//	gridmaze menu              - Start the menu to pick a profile interactively
//	gridmaze serve             - Start the SSH server for remote play
//	gridmaze scores [game]     - Show high scores and recent runs
//	gridmaze desktop           - Play or spectate in a desktop window
//	gridmaze mcp               - Serve the game as MCP tools over stdio
//	gridmaze config            - Print the resolved configuration
//
// Global flags:
//
//	--fps <rate>          - Terminal tick rate (default: 30)
//	--seed <value>        - RNG seed for reproducible boards
//	--db <path>           - Database path (default: ~/.gridmaze/scores.db)
//	--config <path>       - YAML settings file
//	--difficulty <name>   - Preset: easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/gridmaze/internal/games/mazegame"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagEnvFile    string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridmaze",
	Short: "Grid Maze - reach the exit, dodge the obstacles",
	Long: `Grid Maze is a small room on a grid. Walk from the entrance on the left
wall to the exit on the right wall. Obstacles wander one cell per tick;
every win adds one more, every collision sends you back to an empty room.

Available commands:
  list     - Show game profiles
  play     - Play in the terminal
  menu     - Interactive profile picker
  serve    - Start the SSH server for remote play
  scores   - View high scores and recent runs
  desktop  - Play or spectate in a desktop window
  mcp      - Let an agent play over the Model Context Protocol
  config   - Print the resolved configuration

Examples:
  gridmaze play
  gridmaze play maze --difficulty hard
  gridmaze serve --ssh :2222
  gridmaze desktop --ws :8080
  gridmaze desktop --watch ws://localhost:8080/ws
  gridmaze mcp --auto-tick --ws :8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Terminal tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gridmaze/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a maze YAML config")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "Path to a .env file with GRIDMAZE_* overrides (default ./.env)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(desktopCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
}
