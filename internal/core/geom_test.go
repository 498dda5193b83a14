package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{name: "top-left corner", x: 2, y: 3, expected: true},
		{name: "inside", x: 4, y: 4, expected: true},
		{name: "right edge is exclusive", x: 6, y: 3, expected: false},
		{name: "bottom edge is exclusive", x: 2, y: 5, expected: false},
		{name: "left of rect", x: 1, y: 3, expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectEdgesAndCenter(t *testing.T) {
	r := NewRect(10, 20, 6, 4)

	if r.Right() != 16 {
		t.Errorf("Right() = %d, expected 16", r.Right())
	}
	if r.Bottom() != 24 {
		t.Errorf("Bottom() = %d, expected 24", r.Bottom())
	}
	if x, y := r.Center(); x != 13 || y != 22 {
		t.Errorf("Center() = (%d, %d), expected (13, 22)", x, y)
	}
}

func TestRectCentered(t *testing.T) {
	tests := []struct {
		name     string
		outer    Rect
		w, h     int
		expected Rect
	}{
		{
			name:     "fits",
			outer:    NewRect(0, 0, 80, 24),
			w:        16,
			h:        8,
			expected: NewRect(32, 8, 16, 8),
		},
		{
			name:     "offset outer",
			outer:    NewRect(0, 2, 20, 10),
			w:        10,
			h:        4,
			expected: NewRect(5, 5, 10, 4),
		},
		{
			name:     "too large anchors top-left",
			outer:    NewRect(0, 1, 10, 5),
			w:        20,
			h:        8,
			expected: NewRect(0, 1, 20, 8),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.outer.Centered(tc.w, tc.h); got != tc.expected {
				t.Errorf("Centered(%d, %d) = %+v, expected %+v", tc.w, tc.h, got, tc.expected)
			}
		})
	}
}

func TestRectFits(t *testing.T) {
	r := NewRect(0, 0, 16, 9)
	if !r.Fits(16, 9) {
		t.Error("exact size should fit")
	}
	if r.Fits(17, 9) || r.Fits(16, 10) {
		t.Error("larger size should not fit")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 0, 0},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 7) != 3 || Min(7, 3) != 3 {
		t.Error("Min should return smaller value")
	}
	if Max(3, 7) != 7 || Max(7, 3) != 7 {
		t.Error("Max should return larger value")
	}
}
