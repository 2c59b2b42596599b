package common

import "testing"

func TestRectIntersects(t *testing.T) {
	base := NewRect(0, 0, 10, 10)
	cases := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlap", NewRect(5, 5, 10, 10), true},
		{"inside", NewRect(2, 2, 2, 2), true},
		{"touching_right_edge", NewRect(10, 0, 5, 10), false},
		{"touching_bottom_edge", NewRect(0, 10, 10, 5), false},
		{"apart", NewRect(20, 20, 5, 5), false},
		{"zero_width", NewRect(5, 0, 0, 10), false},
		{"zero_height", NewRect(0, 5, 10, 0), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := base.Intersects(c.other); got != c.want {
				t.Fatalf("Intersects(%v) = %v, want %v", c.other, got, c.want)
			}
			if got := c.other.Intersects(base); got != c.want {
				t.Fatalf("Intersects is not symmetric for %v", c.other)
			}
		})
	}
}

func TestRectEdgesAndCenter(t *testing.T) {
	r := NewRect(100, 100, 20, 40)
	if r.Right() != 120 || r.Bottom() != 140 {
		t.Fatalf("unexpected edges right=%v bottom=%v", r.Right(), r.Bottom())
	}

	r.SetBottom(90)
	if r.Y != 50 || r.Bottom() != 90 {
		t.Fatalf("SetBottom: got y=%v bottom=%v", r.Y, r.Bottom())
	}
	r.SetRight(60)
	if r.X != 40 {
		t.Fatalf("SetRight: got x=%v", r.X)
	}

	v := NewRect(0, 0, 48, 64)
	v.SetCenter(r.Center())
	vx, vy := v.Center()
	cx, cy := r.Center()
	if vx != cx || vy != cy {
		t.Fatalf("SetCenter: got (%v,%v) want (%v,%v)", vx, vy, cx, cy)
	}
	if v.Width != 48 || v.Height != 64 {
		t.Fatalf("SetCenter changed size: %vx%v", v.Width, v.Height)
	}
}

func TestRectInflate(t *testing.T) {
	r := NewRect(10, 10, 20, 20).Inflate(20, 20)
	if r != NewRect(0, 0, 40, 40) {
		t.Fatalf("Inflate = %v", r)
	}
	if !r.ContainsX(NewRect(5, 100, 10, 1)) {
		t.Fatalf("expected horizontal containment")
	}
}
