// Package tui runs registered games in a Bubble Tea program, locally or over
// SSH through Wish. It owns the frame loop, key bindings, run bookkeeping and
// the menu and scoreboard screens.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation frame. Loop identifies the
// GameModel that scheduled it, so ticks left over from a closed game are
// dropped instead of speeding up the next one.
type TickMsg struct {
	Loop int64
	Time time.Time
}

var tickLoops atomic.Int64

// newTickLoop returns a fresh loop identifier.
func newTickLoop() int64 {
	return tickLoops.Add(1)
}

// tickCmd schedules the next frame of loop at the given rate.
func tickCmd(loop int64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Loop: loop, Time: t}
	})
}
