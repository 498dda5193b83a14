package core

import "testing"

func TestInputFrameQueuesMovesInOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRight)
	f.Set(ActionPause)
	f.Set(ActionDown)
	f.Set(ActionRight)

	expected := []Action{ActionRight, ActionDown, ActionRight}
	if len(f.Moves) != len(expected) {
		t.Fatalf("Moves = %v, expected %v", f.Moves, expected)
	}
	for i, a := range expected {
		if f.Moves[i] != a {
			t.Errorf("Moves[%d] = %v, expected %v", i, f.Moves[i], a)
		}
	}
	if !f.Has(ActionPause) {
		t.Error("Pause should be set")
	}
}

func TestInputFrameClearAndClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionUp)
	f.Set(ActionRestart)

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionUp) || len(f.Moves) != 0 {
		t.Error("Clear should drop actions and moves")
	}
	if !clone.Has(ActionRestart) || len(clone.Moves) != 1 {
		t.Error("clone should be unaffected by Clear")
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionQuit) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionLeft)
	if !f.Has(ActionLeft) {
		t.Error("Set on zero frame should work")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:  "None",
		ActionLeft:  "Left",
		ActionPause: "Pause",
		Action(99):  "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", int(a), got, want)
		}
	}
}

func TestRuntimeConfigFrames(t *testing.T) {
	tests := []struct {
		rate, ms, expected int
	}{
		{rate: 30, ms: 1000, expected: 30},
		{rate: 30, ms: 600, expected: 18},
		{rate: 60, ms: 1500, expected: 90},
		{rate: 30, ms: 1, expected: 1},
		{rate: 0, ms: 1000, expected: 30},
	}

	for _, tc := range tests {
		cfg := RuntimeConfig{TickRate: tc.rate}
		if got := cfg.Frames(tc.ms); got != tc.expected {
			t.Errorf("Frames(%d) at %d fps = %d, expected %d", tc.ms, tc.rate, got, tc.expected)
		}
	}
}
