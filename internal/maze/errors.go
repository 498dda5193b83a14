package maze

import "errors"

var (
	// ErrInvalidSize is returned for grids smaller than MinSize.
	ErrInvalidSize = errors.New("grid size must be at least 3")

	// ErrInvalidConfig is returned when a Config cannot produce a playable game.
	ErrInvalidConfig = errors.New("invalid game config")

	// ErrPlacementExhausted is returned when obstacle sampling runs out of attempts
	// or the board has no room left for the requested obstacles.
	ErrPlacementExhausted = errors.New("obstacle placement exhausted")
)

// ErrEngineClosed is returned by Engine methods after Close.
var ErrEngineClosed = errors.New("engine closed")
