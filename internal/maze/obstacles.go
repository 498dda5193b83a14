package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// DefaultMaxPlacementAttempts bounds every rejection-sampling loop.
const DefaultMaxPlacementAttempts = 1000

// Policy selects how obstacles are created and re-created.
type Policy int

const (
	// PolicySeeded samples a growing number of obstacles at every reset.
	PolicySeeded Policy = iota
	// PolicyFixedList starts from a configured list and only repositions on reset.
	PolicyFixedList
)

func (p Policy) String() string {
	switch p {
	case PolicySeeded:
		return "seeded"
	case PolicyFixedList:
		return "fixed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the policy by name.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a policy name.
func (p *Policy) UnmarshalText(b []byte) error {
	v, err := ParsePolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParsePolicy accepts "seeded" or "fixed" ("fixed_list"/"fixedlist" also work).
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "seeded":
		return PolicySeeded, nil
	case "fixed", "fixed_list", "fixedlist":
		return PolicyFixedList, nil
	}
	return 0, fmt.Errorf("maze: unknown placement policy %q: %w", s, ErrInvalidConfig)
}

// DefaultFixedObstacles is the starting list used by PolicyFixedList.
func DefaultFixedObstacles() []Position {
	return []Position{{Row: 2, Col: 3}, {Row: 4, Col: 5}, {Row: 5, Col: 2}}
}

// Obstacle is a moving hazard. ID is its stable index in the set.
type Obstacle struct {
	ID  int      `json:"id"`
	Pos Position `json:"pos"`
}

// ObstacleSet owns obstacle positions and their movement rule.
type ObstacleSet struct {
	policy Policy
	items  []Obstacle
}

// NewObstacleSet creates an empty set governed by policy.
func NewObstacleSet(policy Policy) *ObstacleSet {
	return &ObstacleSet{policy: policy}
}

// NewFixed places obstacles at exactly the given positions. Every position must be
// inside the grid and off Wall cells so that staying put is always a legal move.
func NewFixed(m *Maze, positions []Position) (*ObstacleSet, error) {
	s := NewObstacleSet(PolicyFixedList)
	for _, p := range positions {
		if m.IsWall(p) {
			return nil, fmt.Errorf("maze: fixed obstacle at %s is outside the floor of a %dx%d grid: %w",
				p, m.Size, m.Size, ErrInvalidConfig)
		}
		s.Add(p)
	}
	return s, nil
}

// Policy returns the placement policy of the set.
func (s *ObstacleSet) Policy() Policy {
	return s.policy
}

// Len returns the number of obstacles.
func (s *ObstacleSet) Len() int {
	return len(s.items)
}

// Items returns a copy of the obstacles in ID order.
func (s *ObstacleSet) Items() []Obstacle {
	return append([]Obstacle(nil), s.items...)
}

// Positions returns the obstacle positions in ID order.
func (s *ObstacleSet) Positions() []Position {
	out := make([]Position, len(s.items))
	for i, o := range s.items {
		out[i] = o.Pos
	}
	return out
}

// At returns the lowest-ID obstacle standing on p.
func (s *ObstacleSet) At(p Position) (Obstacle, bool) {
	for _, o := range s.items {
		if o.Pos == p {
			return o, true
		}
	}
	return Obstacle{}, false
}

// Add appends an obstacle at p and returns it.
func (s *ObstacleSet) Add(p Position) Obstacle {
	o := Obstacle{ID: len(s.items), Pos: p}
	s.items = append(s.items, o)
	return o
}

// Clear removes every obstacle.
func (s *ObstacleSet) Clear() {
	s.items = s.items[:0]
}

// seedExcluded reports cells the seeded policy never starts an obstacle on:
// the entrance and the two corners next to the entrance and the exit.
func seedExcluded(m *Maze, p Position) bool {
	return p == m.Entrance ||
		p == Pos(1, 1) ||
		p == Pos(m.Size-2, m.Size-2)
}

// SeedCapacity returns how many obstacles PlaceSeeded can fit on m.
func SeedCapacity(m *Maze) int {
	n := 0
	for _, p := range m.InteriorCells() {
		if !seedExcluded(m, p) && m.At(p) != Wall {
			n++
		}
	}
	return n
}

// PlaceSeeded replaces the set with budget obstacles on distinct random interior cells.
// Accepted cells are marked Wall on a scratch copy of the grid to reject duplicates;
// m itself is left untouched.
func (s *ObstacleSet) PlaceSeeded(m *Maze, budget int, rng *rand.Rand, maxAttempts int) error {
	s.Clear()
	if budget <= 0 {
		return nil
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxPlacementAttempts
	}
	if capacity := SeedCapacity(m); budget > capacity {
		return fmt.Errorf("maze: %d obstacles requested, room for %d: %w", budget, capacity, ErrPlacementExhausted)
	}

	scratch := m.Grid.Clone()
	span := m.Size - 2
	for i := 0; i < budget; i++ {
		placed := false
		for attempt := 0; attempt < maxAttempts; attempt++ {
			p := Pos(rng.Intn(span)+1, rng.Intn(span)+1)
			if scratch[p.Row][p.Col] == Wall || seedExcluded(m, p) {
				continue
			}
			scratch[p.Row][p.Col] = Wall
			s.Add(p)
			placed = true
			break
		}
		if !placed {
			s.Clear()
			return fmt.Errorf("maze: obstacle %d not placed after %d attempts: %w", i, maxAttempts, ErrPlacementExhausted)
		}
	}
	return nil
}

// Reposition moves every obstacle, keeping its identity, to a random non-Wall interior cell.
func (s *ObstacleSet) Reposition(m *Maze, rng *rand.Rand, maxAttempts int) error {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxPlacementAttempts
	}
	span := m.Size - 2
	for i := range s.items {
		placed := false
		for attempt := 0; attempt < maxAttempts; attempt++ {
			p := Pos(rng.Intn(span)+1, rng.Intn(span)+1)
			if m.IsWall(p) {
				continue
			}
			s.items[i].Pos = p
			placed = true
			break
		}
		if !placed {
			return fmt.Errorf("maze: obstacle %d not repositioned after %d attempts: %w",
				s.items[i].ID, maxAttempts, ErrPlacementExhausted)
		}
	}
	return nil
}

// canEnter reports whether an obstacle may stand on p.
func (s *ObstacleSet) canEnter(m *Maze, p Position) bool {
	if !m.InBounds(p) || m.IsWall(p) {
		return false
	}
	// Seeded obstacles never sit on the entrance.
	if s.policy == PolicySeeded && p == m.Entrance {
		return false
	}
	return true
}

// Step moves each obstacle once: a random (Δrow, Δcol) in {-1,0,1}² is sampled
// until the target is legal. After maxAttempts samples the nine candidates are
// scanned in order; an obstacle with no legal candidate stays put and is reported
// with ErrPlacementExhausted.
func (s *ObstacleSet) Step(m *Maze, rng *rand.Rand, maxAttempts int) error {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxPlacementAttempts
	}

	var errs []error
	for i := range s.items {
		next, ok := s.sampleMove(m, s.items[i].Pos, rng, maxAttempts)
		if !ok {
			errs = append(errs, fmt.Errorf("maze: obstacle %d stuck at %s: %w",
				s.items[i].ID, s.items[i].Pos, ErrPlacementExhausted))
			continue
		}
		s.items[i].Pos = next
	}
	return errors.Join(errs...)
}

func (s *ObstacleSet) sampleMove(m *Maze, from Position, rng *rand.Rand, maxAttempts int) (Position, bool) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		p := from.Offset(rng.Intn(3)-1, rng.Intn(3)-1)
		if s.canEnter(m, p) {
			return p, true
		}
	}
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if p := from.Offset(dr, dc); s.canEnter(m, p) {
				return p, true
			}
		}
	}
	return from, false
}
