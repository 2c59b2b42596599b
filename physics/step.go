package physics

import "github.com/milk9111/protocol/common"

// Tuning holds the integration constants in world units per second.
type Tuning struct {
	Gravity   float64
	JumpSpeed float64
	MoveSpeed float64
	// MaxStep bounds dt for callers. Step itself never clamps; a displacement
	// larger than a rect's thickness plus the hitbox can tunnel through it.
	MaxStep float64
}

func DefaultTuning() Tuning {
	return Tuning{
		Gravity:   2500,
		JumpSpeed: -700,
		MoveSpeed: 500,
		MaxStep:   1.0 / 30.0,
	}
}

// ClampStep bounds dt to MaxStep when one is configured.
func (t Tuning) ClampStep(dt float64) float64 {
	if t.MaxStep > 0 && dt > t.MaxStep {
		return t.MaxStep
	}
	if dt < 0 {
		return 0
	}
	return dt
}

// Intent is the player's input for one step.
type Intent struct {
	// Direction is -1, 0 or +1. Other values are clamped.
	Direction int
	// Jump is true only on the step where the jump key went down.
	Jump bool
}

type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Step advances b by dt seconds against geom. The order is fixed: horizontal
// movement is resolved before gravity is applied.
func Step(b *Body, in Intent, geom *Geometry, t Tuning, dt float64) {
	b.PrevHitbox = b.Hitbox

	b.Direction = clampDirection(in.Direction)
	if in.Jump {
		b.VelocityY = t.JumpSpeed
		b.OnGround = false
	}

	b.Hitbox.X += float64(b.Direction) * t.MoveSpeed * dt
	Resolve(b, geom, Horizontal)

	b.VelocityY += t.Gravity * dt
	b.Hitbox.Y += b.VelocityY * dt
	Resolve(b, geom, Vertical)

	b.Visual.SetCenter(b.Hitbox.Center())
}

// Resolve pushes b out of every rect it newly penetrated along axis this step.
// Overlaps that already existed at the start of the step are left alone.
func Resolve(b *Body, geom *Geometry, axis Axis) {
	if geom == nil {
		return
	}
	for _, idx := range geom.Candidates(sweep(b.PrevHitbox, b.Hitbox)) {
		other := geom.At(idx)
		if !b.Hitbox.Intersects(other) {
			continue
		}
		switch axis {
		case Horizontal:
			if Crossed(b.Hitbox.Right(), b.PrevHitbox.Right(), other.Left()) {
				b.Hitbox.SetRight(other.Left())
			} else if Crossed(-b.Hitbox.Left(), -b.PrevHitbox.Left(), -other.Right()) {
				b.Hitbox.SetLeft(other.Right())
			}
		case Vertical:
			if Crossed(b.Hitbox.Bottom(), b.PrevHitbox.Bottom(), other.Top()) {
				b.Hitbox.SetBottom(other.Top())
				b.VelocityY = 0
				b.OnGround = true
			} else if Crossed(-b.Hitbox.Top(), -b.PrevHitbox.Top(), -other.Bottom()) {
				b.Hitbox.SetTop(other.Bottom())
				b.VelocityY = 0
			}
		}
	}
}

// Crossed is the "newly penetrated" test for an edge moving in the positive
// direction: it is past face now and was not past it before.
func Crossed(current, previous, face float64) bool {
	return current > face && previous <= face
}

func sweep(a, b common.Rect) common.Rect {
	return union(a, b)
}

func clampDirection(d int) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}
	return 0
}
