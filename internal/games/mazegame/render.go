package mazegame

import (
	"fmt"

	"github.com/vovakirdan/gridmaze/internal/core"
	"github.com/vovakirdan/gridmaze/internal/maze"
)

const (
	hudHeight  = 2
	cellWidth  = 2 // terminal columns per grid cell
	noticeRows = 1
)

// boardSize returns the board size in terminal cells, border box included.
func (g *Game) boardSize() (int, int) {
	n := g.state.Config().GridSize
	return n*cellWidth + 2, n + 2
}

func (g *Game) updateLayout() {
	if g.state == nil {
		return
	}
	w, h := g.boardSize()
	g.tooSmall = g.screenW < w || g.screenH < h+hudHeight+noticeRows
}

// boardRect returns the bordered board area centered below the HUD.
func (g *Game) boardRect(dst *core.Screen) core.Rect {
	w, h := g.boardSize()
	area := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-noticeRows)
	return area.Centered(w, h)
}

// Render draws the HUD, the board and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.state == nil {
		return
	}

	g.renderHUD(dst)

	if g.tooSmall {
		w, h := g.boardSize()
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d, resize to continue", w, h+hudHeight+noticeRows))
		return
	}

	f := g.state.Frame()
	box := g.boardRect(dst)
	dst.DrawBox(box, core.ColorGray)
	g.renderBoard(dst, f, box.X+1, box.Y+1)
	g.renderNotice(dst, box.Bottom())

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "Board cleared!", fmt.Sprintf("Wins: %d  Press R to play again", f.Stats.Wins))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	f := g.state.Frame()
	hud := fmt.Sprintf(" %s | Wins: %d  Obstacles: %d  Streak: %d  Best: %d",
		g.Title(), f.Stats.Wins, len(f.Obstacles), f.Stats.Streak, f.Stats.BestStreak)
	if g.loadErr != nil {
		hud += "  (config error, using defaults)"
	}
	dst.DrawTextColored(0, 0, hud, core.ColorBrightYellow)

	for x := 0; x < dst.Width(); x++ {
		dst.SetColored(x, 1, '─', core.ColorGray)
	}
}

// renderBoard draws every cell two columns wide with its top-left at (ox, oy).
func (g *Game) renderBoard(dst *core.Screen, f maze.Frame, ox, oy int) {
	for r, row := range f.Grid {
		for c, cell := range row {
			glyph, color := cellGlyph(f, maze.Pos(r, c), cell)
			x := ox + c*cellWidth
			for i, ch := range glyph {
				dst.SetColored(x+i, oy+r, ch, color)
			}
		}
	}
}

// cellGlyph picks the two-rune glyph for a cell. Walls are dark and floor is
// light. Obstacles are drawn over the player, the player over the static cells.
func cellGlyph(f maze.Frame, p maze.Position, cell maze.Cell) ([]rune, core.Color) {
	switch {
	case f.ObstacleAt(p):
		return []rune("X "), core.ColorBrightBlue
	case p == f.Player:
		return []rune("@ "), core.ColorBrightRed
	case cell == maze.Wall:
		return []rune("██"), core.ColorGray
	case cell == maze.Exit:
		return []rune("▓▓"), core.ColorBrightGreen
	default:
		return []rune("░░"), core.ColorWhite
	}
}

func (g *Game) renderNotice(dst *core.Screen, y int) {
	if g.notice == nil {
		return
	}
	color := core.ColorBrightGreen
	if g.notice.Kind == maze.EventCollided {
		color = core.ColorBrightRed
	}
	dst.DrawTextCenteredColored(y, g.notice.Message(), color)
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	width := core.Max(len([]rune(line1)), len([]rune(line2))) + 4
	box := dst.Bounds().Centered(width, 5)

	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		for x := box.X + 1; x < box.Right()-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorYellow)
	dst.DrawTextCenteredColored(box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2)
}
