package obj

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

// GeometryDrawer outlines the broadphase shapes of a physics.Geometry in
// screen space. Only boxes are ever indexed, so circles and segments are
// drawn as plain lines.
type GeometryDrawer struct {
	screen     *ebiten.Image
	camX, camY float64
}

func NewGeometryDrawer(screen *ebiten.Image, camX, camY float64) *GeometryDrawer {
	return &GeometryDrawer{screen: screen, camX: camX, camY: camY}
}

func (d *GeometryDrawer) line(a, b cp.Vector, c cp.FColor) {
	vector.StrokeLine(d.screen,
		float32(a.X-d.camX), float32(a.Y-d.camY),
		float32(b.X-d.camX), float32(b.Y-d.camY),
		1, fcolorToRGBA(c), false)
}

func (d *GeometryDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(pos.Sub(cp.Vector{X: radius}), pos.Add(cp.Vector{X: radius}), outline)
}

func (d *GeometryDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, fill)
}

func (d *GeometryDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, outline)
}

func (d *GeometryDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], outline)
	}
}

func (d *GeometryDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	l := size / 2
	d.line(cp.Vector{X: pos.X - l, Y: pos.Y}, cp.Vector{X: pos.X + l, Y: pos.Y}, fill)
	d.line(cp.Vector{X: pos.X, Y: pos.Y - l}, cp.Vector{X: pos.X, Y: pos.Y + l}, fill)
}

func (d *GeometryDrawer) Flags() uint { return cp.DRAW_SHAPES }

func (d *GeometryDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
}

func (d *GeometryDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape != nil && shape.Body() != nil && shape.Body().GetType() == cp.BODY_STATIC {
		return cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}
	}
	return cp.FColor{R: 0.9, G: 0.4, B: 0.9, A: 1.0}
}

func (d *GeometryDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *GeometryDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *GeometryDrawer) Data() interface{} { return nil }

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		return uint8(max(0, min(1, v)) * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
