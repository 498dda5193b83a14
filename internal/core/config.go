package core

// RuntimeConfig is passed to games on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second driving Step
	Seed     int64 // RNG seed; 0 means pick one from the clock
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 30 fps.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// Frames converts a duration in milliseconds to a whole number of frames at
// TickRate, never less than one.
func (c RuntimeConfig) Frames(ms int) int {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultConfig().TickRate
	}
	n := ms * rate / 1000
	if n < 1 {
		return 1
	}
	return n
}

// GameState is the platform-visible status of a game.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step after each frame.
type StepResult struct {
	State GameState
	// Messages are user-facing notices raised during this frame, oldest first.
	Messages []string
}
