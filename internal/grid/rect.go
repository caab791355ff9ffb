package grid

// Rect is an axis-aligned rectangle with inclusive corners.
type Rect struct {
	X1, Y1 int
	X2, Y2 int
}

// RectFromSize builds a Rect with its top-left corner at (x, y).
func RectFromSize(x, y, width, height int) Rect {
	return Rect{X1: x, Y1: y, X2: x + width - 1, Y2: y + height - 1}
}

// Width returns the number of columns covered.
func (r Rect) Width() int {
	return r.X2 - r.X1 + 1
}

// Height returns the number of rows covered.
func (r Rect) Height() int {
	return r.Y2 - r.Y1 + 1
}

// Center returns the middle cell, rounding toward the top-left.
func (r Rect) Center() Position {
	return Position{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Contains reports whether p lies within r.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.X1 && p.X <= r.X2 && p.Y >= r.Y1 && p.Y <= r.Y2
}

// Intersects reports whether r and o share at least one cell.
func (r Rect) Intersects(o Rect) bool {
	return r.X1 <= o.X2 && o.X1 <= r.X2 && r.Y1 <= o.Y2 && o.Y1 <= r.Y2
}

// Grow returns r expanded by n cells on every side. Negative n shrinks it.
func (r Rect) Grow(n int) Rect {
	return Rect{X1: r.X1 - n, Y1: r.Y1 - n, X2: r.X2 + n, Y2: r.Y2 + n}
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.X2 < r.X1 || r.Y2 < r.Y1
}

// Each calls fn for every cell of r in row-major order.
func (r Rect) Each(fn func(p Position)) {
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			fn(Position{X: x, Y: y})
		}
	}
}
