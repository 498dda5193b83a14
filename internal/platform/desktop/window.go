// Package desktop shows the maze in a native window. It plays a local engine or
// follows a remote game over the spectator websocket.
package desktop

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/gridmaze/internal/maze"
	"github.com/vovakirdan/gridmaze/internal/platform/desktop/scene"
	"github.com/vovakirdan/gridmaze/internal/transport/websocket"
)

// fallbackSize is used for the window until the first frame arrives.
const fallbackSize = 8

// Options configures the window.
type Options struct {
	Title    string
	CellSize int
	Logger   *log.Logger
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "Grid Maze"
	}
	if o.CellSize <= 0 {
		o.CellSize = scene.DefaultCellSize
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Window is the ebiten.Game. engine is nil when spectating.
type Window struct {
	board  *scene.Board
	engine *maze.Engine
	opts   Options
	ctx    context.Context
	size   int
	keys   []ebiten.Key
}

// Play runs engine in a window until it is closed or ctx ends. board must be
// registered on engine as both renderer and notifier.
func Play(ctx context.Context, engine *maze.Engine, board *scene.Board, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts = opts.withDefaults()
	go func() {
		if err := engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			opts.Logger.Error("engine stopped", "error", err)
		}
	}()

	w := &Window{board: board, engine: engine, opts: opts}
	return w.run(ctx, engine.Frame().Size)
}

// Watch follows the spectator stream at url in a read-only window.
func Watch(ctx context.Context, url string, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts = opts.withDefaults()
	board := scene.NewBoard()
	go func() {
		err := websocket.Watch(ctx, url, func(m websocket.Message) {
			switch {
			case m.Type == websocket.TypeFrame && m.Frame != nil:
				board.Render(*m.Frame)
			case m.Type == websocket.TypeEvent && m.Event != nil:
				board.Notify(*m.Event)
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			opts.Logger.Error("spectator stream closed", "url", url, "error", err)
		}
	}()

	w := &Window{board: board, opts: opts}
	return w.run(ctx, fallbackSize)
}

func (w *Window) run(ctx context.Context, size int) error {
	w.ctx = ctx
	w.size = size
	width, height := scene.Layout(size, w.opts.CellSize)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(w.opts.Title)

	err := ebiten.RunGame(w)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update handles input. Escape closes the window.
func (w *Window) Update() error {
	if w.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	f, _, ready := w.board.Snapshot()
	if ready && f.Size != w.size {
		w.size = f.Size
		ebiten.SetWindowSize(scene.Layout(f.Size, w.opts.CellSize))
	}

	if w.engine == nil {
		return nil
	}

	w.keys = inpututil.AppendJustPressedKeys(w.keys[:0])
	for _, k := range w.keys {
		var err error
		if dir, ok := scene.KeyDirection(k.String()); ok {
			_, err = w.engine.Move(dir)
		} else {
			switch k {
			case ebiten.KeyN:
				err = w.engine.Reset()
			case ebiten.KeyR:
				err = w.engine.Restart()
			}
		}
		if errors.Is(err, maze.ErrEngineClosed) {
			return ebiten.Termination
		}
		if err != nil {
			w.opts.Logger.Warn("input rejected", "key", k.String(), "error", err)
		}
	}
	return nil
}

// Draw paints the board and the HUD.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(scene.ColorBackground)

	f, banner, ready := w.board.Snapshot()
	if !ready {
		ebitenutil.DebugPrintAt(screen, "Waiting for the first frame...", 8, 8)
		return
	}

	for _, s := range scene.Sprites(f, w.opts.CellSize) {
		switch s.Shape {
		case scene.ShapeCircle:
			vector.DrawFilledCircle(screen, s.X, s.Y, s.W/2, s.Color, true)
		default:
			vector.DrawFilledRect(screen, s.X, s.Y, s.W, s.H, s.Color, false)
		}
	}
	for _, t := range scene.HUD(f, banner, w.opts.CellSize) {
		ebitenutil.DebugPrintAt(screen, t.Body, t.X, t.Y)
	}
}

// Layout keeps a fixed logical size matching the board.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return scene.Layout(w.size, w.opts.CellSize)
}
