package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/gridmaze/internal/core"
)

func asciiRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return r
}

func TestPaintWithoutColorsMatchesBuffer(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "@ ", core.ColorBrightRed)
	s.DrawTextColored(2, 0, "X ", core.ColorBrightBlue)
	s.DrawText(0, 1, "ok")

	got := NewPainter(asciiRenderer()).Paint(s)
	if got != s.String() {
		t.Errorf("Paint = %q, want %q", got, s.String())
	}
}

func TestPaintEmitsColors(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)

	s := core.NewScreen(4, 1)
	s.SetColored(0, 0, '@', core.ColorBrightRed)

	got := NewPainter(r).Paint(s)
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("Paint = %q, want ANSI escapes", got)
	}
	if !strings.Contains(got, "@") {
		t.Errorf("Paint = %q, lost the glyph", got)
	}
}

func TestPaintEmptyScreen(t *testing.T) {
	if got := NewPainter(asciiRenderer()).Paint(core.NewScreen(0, 0)); got != "" {
		t.Errorf("Paint of empty screen = %q", got)
	}
}
