package maze

import "fmt"

// MinSize is the smallest grid that still has an interior.
const MinSize = 3

// Grid is a square, row-major matrix of cells.
type Grid [][]Cell

// Maze is one generated room: the grid plus its fixed entrance and exit.
// It is never mutated after Generate; a reset builds a new one.
type Maze struct {
	Size     int
	Grid     Grid
	Entrance Position
	Exit     Position
}

// EntranceFor returns the entrance opening for a grid of the given size.
func EntranceFor(int) Position {
	return Position{Row: 1, Col: 0}
}

// ExitFor returns the exit cell for a grid of the given size.
func ExitFor(size int) Position {
	return Position{Row: size - 2, Col: size - 1}
}

// Generate builds a size×size room: a Wall border, an open Floor interior, the
// entrance opening at (1,0) and the Exit at (size-2, size-1).
func Generate(size int) (*Maze, error) {
	if size < MinSize {
		return nil, fmt.Errorf("maze: grid size %d: %w", size, ErrInvalidSize)
	}

	grid := make(Grid, size)
	for row := range grid {
		grid[row] = make([]Cell, size)
		for col := range grid[row] {
			grid[row][col] = Wall
		}
	}

	for row := 1; row < size-1; row++ {
		for col := 1; col < size-1; col++ {
			grid[row][col] = Floor
		}
	}

	entrance := EntranceFor(size)
	exit := ExitFor(size)
	grid[entrance.Row][entrance.Col] = Floor
	grid[exit.Row][exit.Col] = Exit

	return &Maze{
		Size:     size,
		Grid:     grid,
		Entrance: entrance,
		Exit:     exit,
	}, nil
}

// InBounds reports whether p lies inside the grid.
func (m *Maze) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < m.Size && p.Col >= 0 && p.Col < m.Size
}

// At returns the cell at p. Out-of-bounds positions read as Wall.
func (m *Maze) At(p Position) Cell {
	if !m.InBounds(p) {
		return Wall
	}
	return m.Grid[p.Row][p.Col]
}

// IsWall reports whether p is a Wall cell or outside the grid.
func (m *Maze) IsWall(p Position) bool {
	return m.At(p) == Wall
}

// IsInterior reports whether p is in rows/cols 1..Size-2.
func (m *Maze) IsInterior(p Position) bool {
	return p.Row >= 1 && p.Row <= m.Size-2 && p.Col >= 1 && p.Col <= m.Size-2
}

// InteriorCells lists every interior position in row-major order.
func (m *Maze) InteriorCells() []Position {
	n := m.Size - 2
	cells := make([]Position, 0, n*n)
	for row := 1; row <= n; row++ {
		for col := 1; col <= n; col++ {
			cells = append(cells, Position{Row: row, Col: col})
		}
	}
	return cells
}

// Clone returns a deep copy of the maze.
func (m *Maze) Clone() *Maze {
	c := *m
	c.Grid = m.Grid.Clone()
	return &c
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]Cell(nil), row...)
	}
	return out
}
