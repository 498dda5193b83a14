package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridmaze/internal/games/mazegame"
	"github.com/vovakirdan/gridmaze/internal/platform/tui"
	"github.com/vovakirdan/gridmaze/internal/registry"
	"github.com/vovakirdan/gridmaze/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores and recent runs",
	Long: `Display the top scores (total wins of a run) and the most recent runs.

Examples:
  gridmaze scores
  gridmaze scores maze_fixed
  gridmaze scores --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Rows per table")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := mazegame.IDSeeded
	if len(args) == 1 {
		gameID = args[0]
	}
	info, ok := registry.Lookup(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q; run 'gridmaze list' to see available games", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagScoresTUI {
		cfg := terminalConfig()
		_, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'gridmaze play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %s\n", "Rank", "Wins", "Date")
	fmt.Printf("  %-4s  %-6s  %s\n", "----", "----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-6d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := store.HighScore(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	} else {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	runs, err := store.RecentRuns(gameID, flagScoresLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Recent Runs")
	fmt.Println()
	fmt.Printf("  %-16s  %-10s  %4s  %6s  %4s  %-13s  %s\n", "Date", "Player", "Wins", "Losses", "Best", "Ended", "Duration")
	for _, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-16s  %-10s  %4d  %6d  %4d  %-13s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), player,
			r.Wins, r.Losses, r.BestStreak, r.EndReason, r.Duration)
	}
	return nil
}
