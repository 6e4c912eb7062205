package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"last cell", 29, 24, true},
		{"outside left", 5, 15, false},
		{"outside top", 15, 5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectInset(t *testing.T) {
	tests := []struct {
		name     string
		r        Rect
		n        int
		expected Rect
	}{
		{"border", NewRect(0, 0, 12, 22), 1, NewRect(1, 1, 10, 20)},
		{"zero", NewRect(3, 4, 5, 6), 0, NewRect(3, 4, 5, 6)},
		{"collapses", NewRect(0, 0, 3, 1), 2, NewRect(2, 2, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Inset(tc.n); got != tc.expected {
				t.Errorf("Inset(%d) = %+v, expected %+v", tc.n, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below
		{15, 0, 10, 10}, // above
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 || Min(10, 5) != 5 {
		t.Error("Min should return 5")
	}
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should return 10")
	}
}
