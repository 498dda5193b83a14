package maze

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Engine serializes access to a GameState and supplies the clock: periodic ticks
// from Run and the deferred reset after a win. Renderers and notifiers are called
// with the engine locked, in event order, and must not call back into the engine.
type Engine struct {
	mu        sync.Mutex
	state     *GameState
	renderers []Renderer
	notifiers []Notifier
	logger    *log.Logger
	pending   map[uint64]*time.Timer
	closed    bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRenderer adds a renderer. Every mutation ends with one Render call per renderer.
func WithRenderer(r Renderer) EngineOption {
	return func(e *Engine) {
		if r != nil {
			e.renderers = append(e.renderers, r)
		}
	}
}

// WithNotifier adds an event sink.
func WithNotifier(n Notifier) EngineOption {
	return func(e *Engine) {
		if n != nil {
			e.notifiers = append(e.notifiers, n)
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *log.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine wraps state. The engine takes ownership; callers must not use state directly.
func NewEngine(state *GameState, opts ...EngineOption) *Engine {
	e := &Engine{
		state:   state,
		logger:  log.New(io.Discard),
		pending: make(map[uint64]*time.Timer),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Move applies a player move.
func (e *Engine) Move(dir Direction) (MoveResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return MoveResult{}, ErrEngineClosed
	}

	res, err := e.state.RequestMove(dir)
	if err != nil {
		e.logError("move", err)
	}
	e.dispatch(res.Events)
	if res.PendingReset != nil {
		e.schedule(*res.PendingReset)
	}
	e.render()
	return res, err
}

// Tick advances the obstacles once.
func (e *Engine) Tick() (TickResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return TickResult{}, ErrEngineClosed
	}

	res, err := e.state.Tick()
	if err != nil {
		e.logError("tick", err)
	}
	e.dispatch(res.Events)
	if res.Render {
		e.render()
	}
	return res, err
}

// Reset regenerates the board immediately.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	err := e.state.Reset()
	if err != nil {
		e.logError("reset", err)
	}
	e.render()
	return err
}

// Restart begins a new session with the configured starting difficulty.
func (e *Engine) Restart() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	err := e.state.Restart()
	if err != nil {
		e.logError("restart", err)
	}
	e.render()
	return err
}

// Frame returns a snapshot of the current state.
func (e *Engine) Frame() Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Frame()
}

// Config returns the game settings.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Config()
}

// Run ticks at the configured period until ctx is done. It renders the first frame
// before the first tick.
func (e *Engine) Run(ctx context.Context) error {
	period := e.Config().TickPeriod
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	e.mu.Lock()
	e.render()
	e.mu.Unlock()

	e.logger.Debug("engine clock started", "period", period)
	for {
		select {
		case <-ctx.Done():
			e.logger.Debug("engine clock stopped")
			return ctx.Err()
		case <-ticker.C:
			if _, err := e.Tick(); errors.Is(err, ErrEngineClosed) {
				return nil
			}
		}
	}
}

// Close cancels pending deferred resets. Later calls return ErrEngineClosed.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
	for gen, t := range e.pending {
		t.Stop()
		delete(e.pending, gen)
	}
}

// schedule arms the deferred reset. Called with e.mu held, after the win event
// has been dispatched.
func (e *Engine) schedule(t ResetTicket) {
	if _, ok := e.pending[t.Generation]; ok {
		return
	}
	delay := e.state.Config().ResetDelay
	e.pending[t.Generation] = time.AfterFunc(delay, func() {
		e.resolve(t)
	})
}

func (e *Engine) resolve(t ResetTicket) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.pending, t.Generation)
	if e.closed {
		return
	}
	ran, err := e.state.ResolveReset(t)
	if err != nil {
		e.logError("deferred reset", err)
	}
	if ran || err != nil {
		e.logger.Debug("deferred reset", "generation", t.Generation, "obstacles", e.state.ObstacleCount())
		e.render()
	}
}

func (e *Engine) dispatch(events []Event) {
	for _, ev := range events {
		e.logger.Info(ev.Message(),
			"event", ev.Kind,
			"obstacle", ev.ObstacleID,
			"obstacles", ev.ObstacleCount,
		)
		for _, n := range e.notifiers {
			n.Notify(ev)
		}
	}
}

func (e *Engine) render() {
	if len(e.renderers) == 0 {
		return
	}
	f := e.state.Frame()
	for _, r := range e.renderers {
		r.Render(f)
	}
}

func (e *Engine) logError(op string, err error) {
	if errors.Is(err, ErrPlacementExhausted) && e.state.Phase() == PhaseCleared {
		e.logger.Warn("board cleared", "op", op, "obstacles", e.state.ObstacleCount(), "error", err)
		return
	}
	e.logger.Error("game error", "op", op, "error", err)
}
