package tui

import "github.com/vovakirdan/gridmaze/internal/maze"

func mazeStats(wins, losses int) maze.Stats {
	return maze.Stats{Wins: wins, Losses: losses, BestStreak: wins}
}
