// Package mazegame adapts the maze rules to the frame-driven registry.Game
// contract used by the terminal platform. Obstacle ticks and the post-win reset
// delay are counted in frames, so a run is fully deterministic for a given seed
// and input sequence.
package mazegame

import (
	"errors"
	"math/rand"
	"time"

	"github.com/vovakirdan/gridmaze/internal/config"
	"github.com/vovakirdan/gridmaze/internal/core"
	"github.com/vovakirdan/gridmaze/internal/maze"
	"github.com/vovakirdan/gridmaze/internal/registry"
)

// Registered game IDs.
const (
	IDSeeded = "maze"
	IDFixed  = "maze_fixed"
)

// messageSeconds is how long a win or collision notice stays on screen.
const messageSeconds = 2

// Package-level settings applied on Reset, set by the CLI before the game starts.
var (
	configPath       string
	envFile          string
	difficultyPreset string
)

// SetConfigPath sets the YAML file used on the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetEnvFile sets the .env file read for GRIDMAZE_* overrides on the next Reset.
func SetEnvFile(path string) {
	envFile = path
}

// SetDifficultyPreset sets the difficulty preset used on the next Reset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

func init() {
	registry.Register(IDSeeded, func() registry.Game {
		return New(maze.PolicySeeded)
	})
	registry.Register(IDFixed, func() registry.Game {
		return New(maze.PolicyFixedList)
	})
}

// Game is the terminal maze game.
type Game struct {
	policy     maze.Policy
	rules      *maze.Config // fixed rules for tests; nil loads from config files
	difficulty string       // overrides the package preset when set
	state      *maze.GameState

	frame       uint64
	tickFrames  int
	tickCounter int
	resetFrames int

	pending       *maze.ResetTicket
	pendingFrames int

	notice       *maze.Event
	noticeFrames int
	messages     []string

	screenW   int
	screenH   int
	tickRate  int
	paused    bool
	gameOver  bool
	tooSmall  bool
	loadErr   error
	startedAt time.Time
}

// New creates a game whose obstacles follow policy. Other rules come from the
// configuration files on Reset.
func New(policy maze.Policy) *Game {
	return &Game{policy: policy}
}

// NewWithRules creates a game that ignores the configuration files.
func NewWithRules(rules maze.Config) *Game {
	return &Game{policy: rules.Policy, rules: &rules}
}

// SetDifficulty selects a difficulty preset for this game only, taking effect
// on the next Reset. SSH sessions use it instead of SetDifficultyPreset.
func (g *Game) SetDifficulty(preset string) {
	g.difficulty = preset
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.policy == maze.PolicyFixedList {
		return IDFixed
	}
	return IDSeeded
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.policy == maze.PolicyFixedList {
		return "Grid Maze (Fixed)"
	}
	return "Grid Maze"
}

// Description implements registry.Describer.
func (g *Game) Description() string {
	if g.policy == maze.PolicyFixedList {
		return "Dodge three wandering obstacles on the way to the exit"
	}
	return "Every win adds an obstacle; one hit and you start from zero"
}

// Reset starts a new run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate
	g.frame = 0
	g.tickCounter = 0
	g.pending = nil
	g.pendingFrames = 0
	g.notice = nil
	g.noticeFrames = 0
	g.messages = nil
	g.paused = false
	g.gameOver = false
	g.startedAt = time.Now()

	rules := g.loadRules()
	g.tickFrames = cfg.Frames(int(rules.TickPeriod / time.Millisecond))
	g.resetFrames = cfg.Frames(int(rules.ResetDelay / time.Millisecond))

	state, err := maze.New(rules, rand.New(rand.NewSource(seed)))
	if err != nil {
		// Fall back to the built-in rules so the session stays playable.
		g.loadErr = errors.Join(g.loadErr, err)
		fallback := maze.DefaultConfig()
		fallback.Policy = g.policy
		state, _ = maze.New(fallback, rand.New(rand.NewSource(seed)))
	}
	g.state = state
	g.updateLayout()
}

func (g *Game) loadRules() maze.Config {
	g.loadErr = nil
	if g.rules != nil {
		return *g.rules
	}

	name := difficultyPreset
	if g.difficulty != "" {
		name = g.difficulty
	}
	preset, err := config.ParsePreset(name)
	if err != nil {
		g.loadErr = err
	}
	fileCfg, err := config.Resolve(config.Options{Path: configPath, Preset: preset, EnvFile: envFile})
	if err != nil {
		g.loadErr = errors.Join(g.loadErr, err)
		fileCfg = config.DefaultMazeConfig()
		config.ApplyPreset(&fileCfg, preset)
	}

	rules, err := fileCfg.GameConfig()
	if err != nil {
		g.loadErr = errors.Join(g.loadErr, err)
		rules = maze.DefaultConfig()
	}
	// Each registered game plays its own policy whatever the settings say.
	rules.Policy = g.policy
	if g.policy == maze.PolicyFixedList && len(rules.FixedObstacles) == 0 {
		rules.FixedObstacles = maze.DefaultFixedObstacles()
	}
	return rules
}

// ConfigError returns the problem found while loading settings on the last
// Reset, or nil. The game falls back to defaults when it is set.
func (g *Game) ConfigError() error {
	return g.loadErr
}

// Rules returns the rules of the current run.
func (g *Game) Rules() maze.Config {
	return g.state.Config()
}

// Frame returns the current board snapshot.
func (g *Game) Frame() maze.Frame {
	return g.state.Frame()
}

// StartedAt returns when the current run began.
func (g *Game) StartedAt() time.Time {
	return g.startedAt
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.frame++
	g.messages = g.messages[:0]

	if in.Has(core.ActionRestart) {
		g.restart()
		return g.result()
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.gameOver || g.paused || g.tooSmall {
		return g.result()
	}

	if g.noticeFrames > 0 {
		g.noticeFrames--
		if g.noticeFrames == 0 {
			g.notice = nil
		}
	}

	for _, a := range in.Moves {
		dir, ok := direction(a)
		if !ok {
			continue
		}
		res, err := g.state.RequestMove(dir)
		g.handle(res.Events, err)
		if res.PendingReset != nil {
			g.pending = res.PendingReset
			g.pendingFrames = g.resetFrames
		}
	}

	if g.pending != nil {
		g.pendingFrames--
		if g.pendingFrames <= 0 {
			ticket := *g.pending
			g.pending = nil
			_, err := g.state.ResolveReset(ticket)
			g.handle(nil, err)
		}
	}

	g.tickCounter++
	if g.tickCounter >= g.tickFrames {
		g.tickCounter = 0
		res, err := g.state.Tick()
		g.handle(res.Events, err)
	}

	return g.result()
}

func (g *Game) restart() {
	g.pending = nil
	g.notice = nil
	g.noticeFrames = 0
	g.paused = false
	g.gameOver = false
	g.tickCounter = 0
	g.startedAt = time.Now()
	if err := g.state.Restart(); err != nil {
		g.handle(nil, err)
	}
}

func (g *Game) handle(events []maze.Event, err error) {
	for i := range events {
		ev := events[i]
		g.notice = &ev
		g.noticeFrames = messageSeconds * g.fps()
		g.messages = append(g.messages, ev.Message())
	}
	if err != nil && g.state.Phase() == maze.PhaseCleared {
		g.gameOver = true
		g.pending = nil
	}
}

func (g *Game) fps() int {
	if g.tickRate <= 0 {
		return core.DefaultConfig().TickRate
	}
	return g.tickRate
}

func (g *Game) result() core.StepResult {
	var msgs []string
	if len(g.messages) > 0 {
		msgs = append(msgs, g.messages...)
	}
	return core.StepResult{State: g.State(), Messages: msgs}
}

// State returns the current game state. The score is the number of wins.
func (g *Game) State() core.GameState {
	if g.state == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.state.Stats().Wins,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Stats returns the session counters of the current run.
func (g *Game) Stats() maze.Stats {
	if g.state == nil {
		return maze.Stats{}
	}
	return g.state.Stats()
}

// Resize adapts the layout to a new terminal size without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.updateLayout()
}

func direction(a core.Action) (maze.Direction, bool) {
	switch a {
	case core.ActionUp:
		return maze.Up, true
	case core.ActionDown:
		return maze.Down, true
	case core.ActionLeft:
		return maze.Left, true
	case core.ActionRight:
		return maze.Right, true
	}
	return 0, false
}
