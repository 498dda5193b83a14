package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridmaze/internal/config"
	"github.com/vovakirdan/gridmaze/internal/core"
	"github.com/vovakirdan/gridmaze/internal/registry"
	"github.com/vovakirdan/gridmaze/internal/storage"
)

// GameModel is the Bubble Tea model that runs one game: it feeds key presses
// into input frames, steps the game on every tick and records the run.
type GameModel struct {
	game    registry.Game
	screen  *core.Screen
	config  core.RuntimeConfig
	painter *Painter
	keys    KeyMap
	help    help.Model
	runs    *runTracker
	logger  *log.Logger
	shotDir string
	loop    int64

	windowW    int
	windowH    int
	input      core.InputFrame
	state      core.GameState
	canGoBack  bool
	quitting   bool
	backToMenu bool
}

// ModelOption configures a GameModel.
type ModelOption func(*GameModel)

// WithPainter sets the painter, e.g. one bound to an SSH session renderer.
func WithPainter(p *Painter) ModelOption {
	return func(m *GameModel) {
		m.painter = p
	}
}

// WithLogger sets the logger for run bookkeeping.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *GameModel) {
		m.logger = l
	}
}

// WithPlayer records runs under the given player name.
func WithPlayer(name string) ModelOption {
	return func(m *GameModel) {
		m.runs.player = name
	}
}

func withRunTracker(t *runTracker) ModelOption {
	return func(m *GameModel) {
		m.runs = t
	}
}

// WithBackToMenu lets Esc leave the game instead of being ignored.
func WithBackToMenu() ModelOption {
	return func(m *GameModel) {
		m.canGoBack = true
	}
}

// WithScreenshotDir overrides where ctrl+s writes screen dumps.
func WithScreenshotDir(dir string) ModelOption {
	return func(m *GameModel) {
		m.shotDir = dir
	}
}

// NewGameModel creates a model for game. A nil store disables score and run
// recording.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := GameModel{
		game:    game,
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    h,
		runs:    newRunTracker(store, nil, ""),
		logger:  log.New(io.Discard),
		shotDir: filepath.Join(config.HomeDir(), "screenshots"),
		windowW: cfg.ScreenW,
		windowH: cfg.ScreenH,
		input:   core.NewInputFrame(),
		loop:    newTickLoop(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.painter == nil {
		m.painter = NewPainter(nil)
	}
	m.runs.logger = m.logger

	m.screen = core.NewScreen(0, 0)
	m.layout()
	return m
}

// layout sizes the game screen to the window minus the help footer.
func (m *GameModel) layout() {
	footer := lipgloss.Height(m.help.View(m.keys))
	m.config.ScreenW = m.windowW
	m.config.ScreenH = core.Max(0, m.windowH-footer)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.runs.begin(m.game.ID())
	m.logger.Debug("game started", "game", m.game.ID(), "seed", m.config.Seed)
	return tickCmd(m.loop, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.runs.finish(storage.EndQuit)
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		// The full help is taller, so the game area shrinks.
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		m.resizeGame()
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.canGoBack {
			m.runs.finish(storage.EndQuit)
			m.backToMenu = true
		}
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.runs.finish(storage.EndRestart)
		m.runs.begin(m.game.ID())
	}

	if action := m.keys.Action(msg); action != core.ActionNone {
		m.input.Set(action)
	}
	return m, nil
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.windowW = msg.Width
	m.windowH = msg.Height
	m.help.Width = msg.Width
	m.layout()
	m.resizeGame()
	return m, nil
}

// resizeGame tells the game about the new area. Games that cannot follow a
// resize are restarted unless the run is already over.
func (m *GameModel) resizeGame() {
	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
		return
	}
	if !m.state.GameOver {
		m.game.Reset(m.config)
	}
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.state.GameOver

	result := m.game.Step(m.input)
	m.state = result.State
	m.input.Clear()

	for _, msg := range result.Messages {
		m.logger.Debug(msg, "game", m.game.ID())
	}
	if s, ok := m.game.(statsSource); ok {
		m.runs.update(s.Stats())
	}
	if m.state.GameOver && !wasOver {
		m.runs.finish(storage.EndBoardCleared)
	}

	return m, tickCmd(m.loop, m.config.TickRate)
}

// saveScreenshot writes the uncolored screen to the screenshot directory.
func (m *GameModel) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(m.shotDir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// View renders the game above the help footer.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return m.painter.Paint(m.screen) + "\n" + m.painter.Faint(m.help.View(m.keys))
}

// IsQuitting returns true if the user asked to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the local terminal until the user quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewGameModel(game, store, cfg, opts...)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if gm, ok := final.(GameModel); ok {
		gm.runs.finish(storage.EndQuit)
	}
	return err
}
