package widget

// Rect is a cell rectangle whose top-left corner is (X, Y).
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r. Both edges are inclusive,
// so a point on the right or bottom border still counts as inside.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Hit is the half-open variant of Contains used for pointer routing, so
// adjacent rectangles never claim the same cell.
func (r Rect) Hit(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}
