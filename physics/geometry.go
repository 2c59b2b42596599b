package physics

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/protocol/common"
)

// Geometry is the immutable set of static solid rectangles for one scene.
// Candidate lookup goes through a chipmunk static space; the exact overlap
// test and all resolution happen in this package.
type Geometry struct {
	rects []common.Rect
	space *cp.Space
}

// NewGeometry copies rects into a new static geometry set. Rects without area
// are kept (they are inert) but never indexed.
func NewGeometry(rects []common.Rect) *Geometry {
	g := &Geometry{
		rects: append([]common.Rect(nil), rects...),
		space: cp.NewSpace(),
	}
	for i, r := range g.rects {
		if r.Empty() {
			continue
		}
		bb := cp.BB{L: r.Left(), B: r.Top(), R: r.Right(), T: r.Bottom()}
		shape := cp.NewBox2(g.space.StaticBody, bb, 0)
		shape.UserData = i
		g.space.AddShape(shape)
	}
	return g
}

// Len returns the number of rectangles, inert ones included.
func (g *Geometry) Len() int {
	if g == nil {
		return 0
	}
	return len(g.rects)
}

// At returns the i-th rectangle.
func (g *Geometry) At(i int) common.Rect {
	return g.rects[i]
}

// DebugDraw hands the indexed shapes to a chipmunk drawer.
func (g *Geometry) DebugDraw(d cp.Drawer) {
	if g == nil || d == nil {
		return
	}
	cp.DrawSpace(g.space, d)
}

// Rects returns a copy of every rectangle in load order.
func (g *Geometry) Rects() []common.Rect {
	if g == nil {
		return nil
	}
	return append([]common.Rect(nil), g.rects...)
}

// Candidates returns the indices of rectangles whose bounds touch area,
// ascending. The result is a superset of the rects that strictly intersect.
func (g *Geometry) Candidates(area common.Rect) []int {
	if g == nil || g.space == nil {
		return nil
	}
	var out []int
	bb := cp.BB{L: area.Left(), B: area.Top(), R: area.Right(), T: area.Bottom()}
	g.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, data interface{}) {
		if idx, ok := shape.UserData.(int); ok {
			out = append(out, idx)
		}
	}, nil)
	sort.Ints(out)
	return out
}

// Bounds returns the smallest rect containing every non-empty rectangle.
func (g *Geometry) Bounds() common.Rect {
	var out common.Rect
	first := true
	for _, r := range g.rects {
		if r.Empty() {
			continue
		}
		if first {
			out = r
			first = false
			continue
		}
		out = union(out, r)
	}
	return out
}

func union(a, b common.Rect) common.Rect {
	left := min(a.Left(), b.Left())
	top := min(a.Top(), b.Top())
	right := max(a.Right(), b.Right())
	bottom := max(a.Bottom(), b.Bottom())
	return common.NewRect(left, top, right-left, bottom-top)
}
