// Package core holds the platform-neutral types shared by games and hosts:
// the screen buffer, input frames and runtime configuration.
// It has no terminal or Bubble Tea dependencies.
package core

// Rect is an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle at (x, y) with the given size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the exclusive right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks r by n cells on every side. The size never goes negative.
func (r Rect) Inset(n int) Rect {
	w := Max(r.W-2*n, 0)
	h := Max(r.H-2*n, 0)
	return Rect{X: r.X + n, Y: r.Y + n, W: w, H: h}
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
