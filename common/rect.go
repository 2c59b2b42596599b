package common

// Rect is an axis-aligned box in world pixels. X/Y is the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the midpoint of the rect.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// SetCenter moves the rect so its midpoint lands on (cx, cy). Size is kept.
func (r *Rect) SetCenter(cx, cy float64) {
	r.X = cx - r.Width/2
	r.Y = cy - r.Height/2
}

func (r *Rect) SetRight(v float64)  { r.X = v - r.Width }
func (r *Rect) SetLeft(v float64)   { r.X = v }
func (r *Rect) SetBottom(v float64) { r.Y = v - r.Height }
func (r *Rect) SetTop(v float64)    { r.Y = v }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects reports whether the interiors of r and other overlap. Touching
// edges do not count, and rects without area never intersect.
func (r Rect) Intersects(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Inflate grows the rect by dx horizontally and dy vertically, keeping the
// same center.
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{
		X:      r.X - dx/2,
		Y:      r.Y - dy/2,
		Width:  r.Width + dx,
		Height: r.Height + dy,
	}
}

// ContainsX reports whether inner's horizontal span lies within r's.
func (r Rect) ContainsX(inner Rect) bool {
	return inner.Left() >= r.Left() && inner.Right() <= r.Right()
}
