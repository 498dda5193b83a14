package maze

import "strings"

// Frame is a read-only snapshot of everything a renderer needs.
type Frame struct {
	Size          int        `json:"size"`
	Grid          Grid       `json:"grid"`
	Entrance      Position   `json:"entrance"`
	Exit          Position   `json:"exit"`
	Player        Position   `json:"player"`
	Obstacles     []Obstacle `json:"obstacles"`
	Phase         Phase      `json:"phase"`
	HasWon        bool       `json:"has_won"`
	ObstacleCount int        `json:"obstacle_count"`
	Policy        Policy     `json:"policy"`
	Stats         Stats      `json:"stats"`
	Generation    uint64     `json:"generation"`
}

// Renderer paints frames. It owns no game logic.
type Renderer interface {
	Render(f Frame)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame)

// Render calls fn(f).
func (fn RendererFunc) Render(f Frame) { fn(f) }

// Notifier receives win and collision events for presentation.
type Notifier interface {
	Notify(e Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

// Notify calls fn(e).
func (fn NotifierFunc) Notify(e Event) { fn(e) }

// Glyphs used by Frame.Rows.
const (
	GlyphWall     = '#'
	GlyphFloor    = '.'
	GlyphExit     = 'E'
	GlyphPlayer   = '@'
	GlyphObstacle = 'X'
)

// ObstacleAt reports whether any obstacle stands on p.
func (f Frame) ObstacleAt(p Position) bool {
	for _, o := range f.Obstacles {
		if o.Pos == p {
			return true
		}
	}
	return false
}

// Rows draws the frame as one string per grid row. Obstacles are drawn over the
// player, the player over the static cells.
func (f Frame) Rows() []string {
	rows := make([]string, len(f.Grid))
	for r, line := range f.Grid {
		var b strings.Builder
		b.Grow(len(line))
		for c, cell := range line {
			p := Pos(r, c)
			switch {
			case f.ObstacleAt(p):
				b.WriteRune(GlyphObstacle)
			case p == f.Player:
				b.WriteRune(GlyphPlayer)
			case cell == Wall:
				b.WriteRune(GlyphWall)
			case cell == Exit:
				b.WriteRune(GlyphExit)
			default:
				b.WriteRune(GlyphFloor)
			}
		}
		rows[r] = b.String()
	}
	return rows
}

// String joins Rows with newlines.
func (f Frame) String() string {
	return strings.Join(f.Rows(), "\n")
}
