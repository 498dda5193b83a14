package maze

import "fmt"

// Phase is the coarse state of a GameState.
type Phase int

const (
	// PhasePlaying accepts moves and ticks.
	PhasePlaying Phase = iota
	// PhaseWon lasts from reaching the exit until the deferred reset runs.
	PhaseWon
	// PhaseLost is entered on collision and left by the immediate reset.
	PhaseLost
	// PhaseCleared means the board has no room for the next obstacle budget.
	PhaseCleared
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	case PhaseCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(b []byte) error {
	for _, v := range []Phase{PhasePlaying, PhaseWon, PhaseLost, PhaseCleared} {
		if v.String() == string(b) {
			*p = v
			return nil
		}
	}
	return fmt.Errorf("maze: unknown phase %q", b)
}

// EventKind identifies a user-facing game event.
type EventKind int

const (
	EventWon EventKind = iota + 1
	EventCollided
)

func (k EventKind) String() string {
	switch k {
	case EventWon:
		return "won"
	case EventCollided:
		return "collided"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes an event kind name.
func (k *EventKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "won":
		*k = EventWon
	case "collided":
		*k = EventCollided
	default:
		return fmt.Errorf("maze: unknown event kind %q", b)
	}
	return nil
}

// Event is emitted on a win or a collision. ObstacleID is only meaningful for
// EventCollided. Position and ObstacleCount are recorded at the moment of the event,
// before any reset.
type Event struct {
	Kind          EventKind `json:"kind"`
	ObstacleID    int       `json:"obstacle_id"`
	Position      Position  `json:"position"`
	ObstacleCount int       `json:"obstacle_count"`
}

// Message returns a short human-readable description of the event.
func (e Event) Message() string {
	switch e.Kind {
	case EventWon:
		return "You won! You reached the exit."
	case EventCollided:
		return "You collided with an obstacle. Restarting."
	default:
		return ""
	}
}

// ResetTicket identifies the board a deferred reset was scheduled for.
// Resolving it after any other reset has happened does nothing.
type ResetTicket struct {
	Generation uint64
}

// MoveResult describes the outcome of RequestMove.
type MoveResult struct {
	Moved        bool
	DoorStep     bool
	Events       []Event
	PendingReset *ResetTicket
}

// TickResult describes the outcome of Tick. Render is always true: every tick
// ends with a repaint, even while the obstacles are frozen.
type TickResult struct {
	Stepped bool
	Events  []Event
	Render  bool
}

// Stats are per-session counters. They never affect the rules.
type Stats struct {
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	Streak     int `json:"streak"`
	BestStreak int `json:"best_streak"`
	Resets     int `json:"resets"`
}
