package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(40, 12)

	if s.Width() != 40 || s.Height() != 12 {
		t.Fatalf("size = %dx%d, expected 40x12", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blank {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenNegativeSize(t *testing.T) {
	s := NewScreen(-3, -1)
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("size = %dx%d, expected 0x0", s.Width(), s.Height())
	}
	if s.String() != "" {
		t.Errorf("String() = %q, expected empty", s.String())
	}
}

func TestScreenSetCell(t *testing.T) {
	s := NewScreen(10, 5)

	s.SetColored(3, 2, '@', ColorRed)
	got := s.GetCell(3, 2)
	if got.Rune != '@' || got.Color != ColorRed {
		t.Errorf("GetCell(3, 2) = %+v, expected red @", got)
	}

	s.Set(4, 2, 'x')
	if got := s.GetCell(4, 2); got.Color != ColorDefault {
		t.Errorf("Set should write default color, got %v", got.Color)
	}

	tests := []struct {
		name string
		x, y int
	}{
		{name: "left", x: -1, y: 0},
		{name: "right", x: 10, y: 0},
		{name: "above", x: 0, y: -1},
		{name: "below", x: 0, y: 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s.SetColored(tc.x, tc.y, 'Z', ColorBlue)
			if got := s.Get(tc.x, tc.y); got != ' ' {
				t.Errorf("out of bounds Get = %q, expected space", got)
			}
		})
	}
}

func TestScreenClearResetsColors(t *testing.T) {
	s := NewScreen(4, 2)
	s.FillCell(Cell{Rune: '#', Color: ColorGreen})
	s.Clear()

	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if c := s.GetCell(x, y); c != blank {
				t.Errorf("cell (%d, %d) = %+v after Clear", x, y, c)
			}
		}
	}
}

func TestScreenDrawTextColored(t *testing.T) {
	s := NewScreen(8, 1)
	s.DrawTextColored(2, 0, "ab·c", ColorYellow)

	if got := s.Row(0); got != "  ab·c  " {
		t.Errorf("Row(0) = %q", got)
	}
	// Multi-byte runes occupy a single cell.
	if got := s.GetCell(5, 0); got.Rune != 'c' || got.Color != ColorYellow {
		t.Errorf("GetCell(5, 0) = %+v, expected yellow c", got)
	}
}

func TestScreenDrawTextClipped(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(3, 0, "hello")

	if got := s.Row(0); got != "   he" {
		t.Errorf("Row(0) = %q, expected clipped text", got)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "WIN")

	if got := s.Row(0); got != "    WIN    " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3), ColorCyan)

	expected := []string{
		"┌───┐",
		"│   │",
		"└───┘",
	}
	for y, want := range expected {
		if got := s.Row(y); got != want {
			t.Errorf("Row(%d) = %q, expected %q", y, got, want)
		}
	}
	if s.GetCell(0, 0).Color != ColorCyan {
		t.Error("box corner should be cyan")
	}
}

func TestScreenDrawBoxTooSmall(t *testing.T) {
	s := NewScreen(3, 3)
	s.DrawBox(NewRect(0, 0, 1, 3), ColorCyan)

	if strings.TrimSpace(s.String()) != "" {
		t.Errorf("degenerate box should draw nothing, got %q", s.String())
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawRect(NewRect(1, 1, 2, 2), '#')

	expected := "    \n ## \n ## "
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetColored(1, 1, 'X', ColorBlue)
	s.Set(3, 0, 'Y')

	s.Resize(2, 3)
	if s.Width() != 2 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 2x3", s.Width(), s.Height())
	}
	if got := s.GetCell(1, 1); got.Rune != 'X' || got.Color != ColorBlue {
		t.Errorf("content should survive resize, got %+v", got)
	}
	if got := s.Get(3, 0); got != ' ' {
		t.Errorf("clipped content should be gone, got %q", got)
	}
	if got := s.Row(2); got != "  " {
		t.Errorf("new row should be blank, got %q", got)
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != "   " {
		t.Errorf("Row(5) = %q, expected spaces", got)
	}
}
