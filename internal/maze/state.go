package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Config holds the rules-level settings of a game.
type Config struct {
	GridSize             int
	Policy               Policy
	InitialObstacles     int        // starting difficulty counter (PolicySeeded budget)
	FixedObstacles       []Position // starting obstacles for PolicyFixedList
	TickPeriod           time.Duration
	ResetDelay           time.Duration
	MaxPlacementAttempts int
}

// DefaultConfig returns the classic 8×8 seeded game.
func DefaultConfig() Config {
	return Config{
		GridSize:             8,
		Policy:               PolicySeeded,
		InitialObstacles:     0,
		FixedObstacles:       DefaultFixedObstacles(),
		TickPeriod:           time.Second,
		ResetDelay:           time.Second,
		MaxPlacementAttempts: DefaultMaxPlacementAttempts,
	}
}

// Validate checks settings that do not need a generated board.
func (c Config) Validate() error {
	if c.GridSize < MinSize {
		return fmt.Errorf("maze: grid size %d: %w", c.GridSize, errors.Join(ErrInvalidConfig, ErrInvalidSize))
	}
	if c.InitialObstacles < 0 {
		return fmt.Errorf("maze: initial obstacles %d is negative: %w", c.InitialObstacles, ErrInvalidConfig)
	}
	if c.TickPeriod <= 0 {
		return fmt.Errorf("maze: tick period %s must be positive: %w", c.TickPeriod, ErrInvalidConfig)
	}
	if c.ResetDelay <= 0 {
		return fmt.Errorf("maze: reset delay %s must be positive: %w", c.ResetDelay, ErrInvalidConfig)
	}
	if c.MaxPlacementAttempts < 0 {
		return fmt.Errorf("maze: max placement attempts %d is negative: %w", c.MaxPlacementAttempts, ErrInvalidConfig)
	}
	switch c.Policy {
	case PolicySeeded, PolicyFixedList:
	default:
		return fmt.Errorf("maze: unknown policy %d: %w", c.Policy, ErrInvalidConfig)
	}
	return nil
}

func (c Config) attempts() int {
	if c.MaxPlacementAttempts <= 0 {
		return DefaultMaxPlacementAttempts
	}
	return c.MaxPlacementAttempts
}

// GameState owns the player, the current maze and the obstacle set, and applies
// every rule transition. It is not safe for concurrent use; see Engine.
type GameState struct {
	cfg       Config
	rng       *rand.Rand
	maze      *Maze
	obstacles *ObstacleSet

	player        Position
	hasWon        bool
	doorStepped   bool
	obstacleCount int
	phase         Phase
	generation    uint64
	stats         Stats
}

// New validates cfg and builds the first board. A nil rng is seeded from the clock.
func New(cfg Config, rng *rand.Rand) (*GameState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	m, err := Generate(cfg.GridSize)
	if err != nil {
		return nil, err
	}

	s := &GameState{
		cfg:  cfg,
		rng:  rng,
		maze: m,
	}

	switch cfg.Policy {
	case PolicyFixedList:
		s.obstacles, err = NewFixed(m, cfg.FixedObstacles)
		if err != nil {
			return nil, err
		}
	default:
		s.obstacleCount = cfg.InitialObstacles
		s.obstacles = NewObstacleSet(PolicySeeded)
		if err := s.obstacles.PlaceSeeded(m, s.obstacleCount, rng, cfg.attempts()); err != nil {
			return nil, fmt.Errorf("maze: initial obstacles: %w", errors.Join(ErrInvalidConfig, err))
		}
	}

	s.player = m.Entrance
	s.phase = PhasePlaying
	return s, nil
}

// Config returns the settings the game was built with.
func (s *GameState) Config() Config { return s.cfg }

// Maze returns the current board. Callers must not modify it.
func (s *GameState) Maze() *Maze { return s.maze }

// Obstacles returns the obstacle set.
func (s *GameState) Obstacles() *ObstacleSet { return s.obstacles }

// Player returns the player position.
func (s *GameState) Player() Position { return s.player }

// HasWon reports whether the player is standing in the exit awaiting reset.
func (s *GameState) HasWon() bool { return s.hasWon }

// ObstacleCount returns the difficulty counter.
func (s *GameState) ObstacleCount() int { return s.obstacleCount }

// Phase returns the current phase.
func (s *GameState) Phase() Phase { return s.phase }

// Generation counts completed resets.
func (s *GameState) Generation() uint64 { return s.generation }

// Stats returns the session counters.
func (s *GameState) Stats() Stats { return s.stats }

// RequestMove applies a player move. Moves out of the grid or into a Wall are
// ignored. While the player is in the exit the direction is ignored and the
// player steps through the door once; further moves do nothing until the reset.
func (s *GameState) RequestMove(dir Direction) (MoveResult, error) {
	var res MoveResult
	if s.phase == PhaseCleared {
		return res, nil
	}

	if s.hasWon {
		if s.doorStepped {
			return res, nil
		}
		s.doorStepped = true
		s.player = s.maze.Exit
		res.Moved = true
		res.DoorStep = true
		return res, nil
	}

	next := s.player.Add(dir)
	if !s.maze.InBounds(next) || s.maze.IsWall(next) {
		return res, nil
	}
	s.player = next
	res.Moved = true

	if s.maze.At(next) == Exit {
		s.hasWon = true
		s.phase = PhaseWon
		s.obstacleCount++
		s.stats.Wins++
		s.stats.Streak++
		if s.stats.Streak > s.stats.BestStreak {
			s.stats.BestStreak = s.stats.Streak
		}
		res.Events = append(res.Events, Event{
			Kind:          EventWon,
			Position:      next,
			ObstacleCount: s.obstacleCount,
		})
		res.PendingReset = &ResetTicket{Generation: s.generation}
	}

	events, err := s.CheckCollision()
	res.Events = append(res.Events, events...)
	return res, err
}

// CheckCollision emits EventCollided and resets the board if an obstacle shares
// the player's cell. The seeded policy also drops the difficulty counter to zero.
func (s *GameState) CheckCollision() ([]Event, error) {
	if s.phase == PhaseCleared {
		return nil, nil
	}
	o, ok := s.obstacles.At(s.player)
	if !ok {
		return nil, nil
	}

	s.phase = PhaseLost
	s.stats.Losses++
	s.stats.Streak = 0
	if s.cfg.Policy == PolicySeeded {
		s.obstacleCount = 0
	}

	ev := Event{
		Kind:          EventCollided,
		ObstacleID:    o.ID,
		Position:      s.player,
		ObstacleCount: s.obstacleCount,
	}
	return []Event{ev}, s.Reset()
}

// Tick advances the obstacles one step and re-checks collision. Nothing moves
// while the player is in the exit.
func (s *GameState) Tick() (TickResult, error) {
	res := TickResult{Render: true}
	if s.hasWon || s.phase == PhaseCleared {
		return res, nil
	}

	stepErr := s.obstacles.Step(s.maze, s.rng, s.cfg.attempts())
	res.Stepped = true

	events, err := s.CheckCollision()
	res.Events = events
	return res, errors.Join(stepErr, err)
}

// Reset puts the player back at the entrance on a freshly generated board.
// Seeded obstacles are re-sampled using the difficulty counter as budget; fixed-list
// obstacles keep their identities and are scattered over the interior. When the
// board cannot hold the budget the state moves to PhaseCleared and the error wraps
// ErrPlacementExhausted.
func (s *GameState) Reset() error {
	m, err := Generate(s.cfg.GridSize)
	if err != nil {
		return err
	}

	obstacles := s.obstacles
	switch s.cfg.Policy {
	case PolicyFixedList:
		err = obstacles.Reposition(m, s.rng, s.cfg.attempts())
	default:
		obstacles = NewObstacleSet(PolicySeeded)
		err = obstacles.PlaceSeeded(m, s.obstacleCount, s.rng, s.cfg.attempts())
	}
	if err != nil {
		s.phase = PhaseCleared
		s.hasWon = false
		return err
	}

	s.install(m, obstacles)
	return nil
}

// ResolveReset runs the deferred reset for t. It returns false without touching
// the state when another reset already happened since t was issued.
func (s *GameState) ResolveReset(t ResetTicket) (bool, error) {
	if t.Generation != s.generation || !s.hasWon {
		return false, nil
	}
	return true, s.Reset()
}

// Restart starts a new session: the difficulty counter, the statistics and (for
// the fixed-list policy) the obstacle positions return to their configured values.
func (s *GameState) Restart() error {
	s.stats = Stats{}
	s.obstacleCount = 0
	if s.cfg.Policy == PolicySeeded {
		s.obstacleCount = s.cfg.InitialObstacles
		return s.Reset()
	}

	m, err := Generate(s.cfg.GridSize)
	if err != nil {
		return err
	}
	fixed, err := NewFixed(m, s.cfg.FixedObstacles)
	if err != nil {
		return err
	}
	s.install(m, fixed)
	return nil
}

func (s *GameState) install(m *Maze, obstacles *ObstacleSet) {
	s.maze = m
	s.obstacles = obstacles
	s.player = m.Entrance
	s.hasWon = false
	s.doorStepped = false
	s.phase = PhasePlaying
	s.generation++
	s.stats.Resets++
}

// Frame returns a read-only snapshot for renderers.
func (s *GameState) Frame() Frame {
	return Frame{
		Size:          s.maze.Size,
		Grid:          s.maze.Grid.Clone(),
		Entrance:      s.maze.Entrance,
		Exit:          s.maze.Exit,
		Player:        s.player,
		Obstacles:     s.obstacles.Items(),
		Phase:         s.phase,
		HasWon:        s.hasWon,
		ObstacleCount: s.obstacleCount,
		Policy:        s.cfg.Policy,
		Stats:         s.stats,
		Generation:    s.generation,
	}
}
