package mazegame

import "github.com/vovakirdan/gridmaze/internal/maze"

// StateType is the coarse state of the terminal game.
type StateType string

const (
	StatePlaying  StateType = "playing"
	StateWon      StateType = "won"
	StatePaused   StateType = "paused"
	StateGameOver StateType = "game_over"
	StateTooSmall StateType = "paused_small_window"
)

// Snapshot captures the game for determinism tests.
type Snapshot struct {
	Frame      uint64
	Player     maze.Position
	Obstacles  []maze.Position
	Count      int
	Wins       int
	Losses     int
	Generation uint64
	State      StateType
}

// Snapshot returns the current snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StateTooSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.state.HasWon():
		state = StateWon
	}

	stats := g.state.Stats()
	return Snapshot{
		Frame:      g.frame,
		Player:     g.state.Player(),
		Obstacles:  g.state.Obstacles().Positions(),
		Count:      g.state.ObstacleCount(),
		Wins:       stats.Wins,
		Losses:     stats.Losses,
		Generation: g.state.Generation(),
		State:      state,
	}
}
