// Package maze holds the game rules: the walled room, the wandering obstacles and the
// player state machine. It has no rendering or timing dependencies; hosts drive it
// through GameState (single goroutine) or Engine (serialized, clock-driven).
package maze

import (
	"fmt"
	"strings"
)

// Cell is the static content of one grid square.
type Cell int

const (
	Wall Cell = iota
	Floor
	Exit
)

// String returns a lowercase name for the cell.
func (c Cell) String() string {
	switch c {
	case Wall:
		return "wall"
	case Floor:
		return "floor"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// MarshalText encodes the cell by name so frames serialize readably.
func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a cell name written by MarshalText.
func (c *Cell) UnmarshalText(b []byte) error {
	switch string(b) {
	case "wall":
		*c = Wall
	case "floor":
		*c = Floor
	case "exit":
		*c = Exit
	default:
		return fmt.Errorf("maze: unknown cell %q", b)
	}
	return nil
}

// Position is a 0-indexed (row, col) grid coordinate.
type Position struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Add returns the position one step away in direction d.
func (p Position) Add(d Direction) Position {
	dr, dc := d.Delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Offset returns p shifted by (dr, dc).
func (p Position) Offset(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Direction is a player move intent.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists all move directions in a stable order.
var Directions = []Direction{Up, Down, Left, Right}

// Delta returns the unit (row, col) vector for the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection accepts "up", "down", "left" or "right" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("maze: unknown direction %q", s)
}
