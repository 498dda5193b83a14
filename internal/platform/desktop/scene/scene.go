// Package scene turns maze frames into flat drawing instructions for the
// desktop window. It holds no graphics state so it can be tested without a
// display.
package scene

import (
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/vovakirdan/gridmaze/internal/maze"
)

const (
	// DefaultCellSize is the pixel size of one grid cell.
	DefaultCellSize = 40

	// HUDHeight is the strip under the board used for text.
	HUDHeight = 64

	// lineHeight matches the debug font of the window.
	lineHeight = 16

	// bannerTTL is how long an event message stays on screen.
	bannerTTL = 2 * time.Second
)

// Palette.
var (
	ColorFloor      = color.RGBA{255, 255, 255, 255}
	ColorWall       = color.RGBA{0, 0, 0, 255}
	ColorExit       = color.RGBA{0, 200, 0, 255}
	ColorPlayer     = color.RGBA{230, 40, 40, 255}
	ColorObstacle   = color.RGBA{40, 90, 230, 255}
	ColorBackground = color.RGBA{20, 20, 20, 255}
)

// Shape is the primitive a Sprite is drawn with.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeCircle
)

// Sprite is one filled primitive. For circles X and Y are the center and W is
// the diameter.
type Sprite struct {
	Shape Shape
	X, Y  float32
	W, H  float32
	Color color.RGBA
}

// CellColor returns the fill of a static cell.
func CellColor(c maze.Cell) color.RGBA {
	switch c {
	case maze.Wall:
		return ColorWall
	case maze.Exit:
		return ColorExit
	default:
		return ColorFloor
	}
}

// Layout returns the window size for a board of size cells.
func Layout(size, cellSize int) (int, int) {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return size * cellSize, size*cellSize + HUDHeight
}

// Sprites lists the primitives for f in paint order: cells, then the player,
// then the obstacles.
func Sprites(f maze.Frame, cellSize int) []Sprite {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	cs := float32(cellSize)

	sprites := make([]Sprite, 0, f.Size*f.Size+1+len(f.Obstacles))
	for r, line := range f.Grid {
		for c, cell := range line {
			sprites = append(sprites, Sprite{
				Shape: ShapeRect,
				X:     float32(c) * cs,
				Y:     float32(r) * cs,
				W:     cs,
				H:     cs,
				Color: CellColor(cell),
			})
		}
	}

	sprites = append(sprites, Sprite{
		Shape: ShapeCircle,
		X:     float32(f.Player.Col)*cs + cs/2,
		Y:     float32(f.Player.Row)*cs + cs/2,
		W:     cs * 0.8,
		H:     cs * 0.8,
		Color: ColorPlayer,
	})

	inset := cs * 0.15
	for _, o := range f.Obstacles {
		sprites = append(sprites, Sprite{
			Shape: ShapeRect,
			X:     float32(o.Pos.Col)*cs + inset,
			Y:     float32(o.Pos.Row)*cs + inset,
			W:     cs - 2*inset,
			H:     cs - 2*inset,
			Color: ColorObstacle,
		})
	}
	return sprites
}

// Text is a HUD line at a pixel position.
type Text struct {
	X, Y int
	Body string
}

// HUD returns the text lines drawn under the board.
func HUD(f maze.Frame, banner string, cellSize int) []Text {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	top := f.Size*cellSize + 4

	lines := []Text{
		{X: 8, Y: top, Body: fmt.Sprintf("Obstacles: %d  Wins: %d  Losses: %d  Streak: %d",
			len(f.Obstacles), f.Stats.Wins, f.Stats.Losses, f.Stats.Streak)},
	}
	switch {
	case banner != "":
		lines = append(lines, Text{X: 8, Y: top + lineHeight, Body: banner})
	case f.Phase == maze.PhaseCleared:
		lines = append(lines, Text{X: 8, Y: top + lineHeight, Body: "Board full. Press R to restart."})
	}
	lines = append(lines, Text{X: 8, Y: top + 2*lineHeight, Body: "Arrows/WASD: Move  N: New board  R: Restart  Esc: Quit"})
	return lines
}

// KeyDirection maps a key name to a move.
func KeyDirection(name string) (maze.Direction, bool) {
	switch name {
	case "ArrowUp", "W":
		return maze.Up, true
	case "ArrowDown", "S":
		return maze.Down, true
	case "ArrowLeft", "A":
		return maze.Left, true
	case "ArrowRight", "D":
		return maze.Right, true
	}
	return 0, false
}

// Board keeps the latest frame and event banner. It implements maze.Renderer
// and maze.Notifier and is safe to feed from the engine while the window draws.
type Board struct {
	mu       sync.Mutex
	frame    maze.Frame
	ready    bool
	banner   string
	bannerAt time.Time
	now      func() time.Time
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{now: time.Now}
}

// Render stores f.
func (b *Board) Render(f maze.Frame) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frame = f
	b.ready = true
}

// Notify shows the event message for a short while.
func (b *Board) Notify(e maze.Event) {
	msg := e.Message()
	if msg == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.banner = msg
	b.bannerAt = b.now()
}

// Snapshot returns the latest frame, the live banner and whether any frame has
// arrived yet.
func (b *Board) Snapshot() (maze.Frame, string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	banner := b.banner
	if banner != "" && b.now().Sub(b.bannerAt) > bannerTTL {
		b.banner = ""
		banner = ""
	}
	return b.frame, banner, b.ready
}
