package physics

import (
	"testing"

	"github.com/milk9111/protocol/common"
)

const frame = 0.016

func bodyAt(x, y, w, h float64) *Body {
	b := NewBody(0, 0, Size{VisualWidth: w + 28, VisualHeight: h + 24, HitboxWidth: w, HitboxHeight: h})
	b.Hitbox = common.NewRect(x, y, w, h)
	b.PrevHitbox = b.Hitbox
	b.Visual.SetCenter(b.Hitbox.Center())
	return b
}

func noGravity() Tuning {
	t := DefaultTuning()
	t.Gravity = 0
	return t
}

func TestStepLandsOnFloorScenario(t *testing.T) {
	floor := common.NewRect(90, 140, 200, 20)
	geom := NewGeometry([]common.Rect{floor})
	tuning := DefaultTuning()

	cases := []struct {
		name   string
		startY float64
	}{
		{"resting_on_surface", 100},
		{"short_drop", 80},
		{"long_drop", -200},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := bodyAt(100, c.startY, 20, 40)
			landed := false
			for i := 0; i < 500 && !landed; i++ {
				prevBottom := b.Hitbox.Bottom()
				v := b.VelocityY + tuning.Gravity*frame
				y := b.Hitbox.Y + v*frame
				expectCross := prevBottom <= floor.Top() && y+b.Hitbox.Height > floor.Top()

				Step(b, Intent{}, geom, tuning, frame)

				if !expectCross {
					if b.OnGround {
						t.Fatalf("step %d: landed before crossing (bottom=%v)", i, b.Hitbox.Bottom())
					}
					if b.VelocityY != v {
						t.Fatalf("step %d: velocity %v, want %v", i, b.VelocityY, v)
					}
					continue
				}
				if b.Hitbox.Bottom() != floor.Top() {
					t.Fatalf("step %d: bottom %v, want %v", i, b.Hitbox.Bottom(), floor.Top())
				}
				if b.VelocityY != 0 {
					t.Fatalf("step %d: velocity %v, want 0", i, b.VelocityY)
				}
				if !b.OnGround {
					t.Fatalf("step %d: expected OnGround", i)
				}
				landed = true
			}
			if !landed {
				t.Fatalf("never landed")
			}
		})
	}
}

func TestStepAtRestIsIdempotent(t *testing.T) {
	widths := []float64{20, 21, 40, 64, 200, 1000}
	for _, w := range widths {
		floor := common.NewRect(50, 140, w, 20)
		geom := NewGeometry([]common.Rect{floor})
		b := bodyAt(50, 100, 20, 40)
		b.OnGround = true

		for i := 0; i < 10; i++ {
			Step(b, Intent{}, geom, DefaultTuning(), frame)
			if b.Hitbox.Bottom() != floor.Top() || b.VelocityY != 0 || !b.OnGround {
				t.Fatalf("width %v step %d: bottom=%v vy=%v onGround=%v", w, i, b.Hitbox.Bottom(), b.VelocityY, b.OnGround)
			}
		}
	}
}

func TestResolveIgnoresPreexistingOverlap(t *testing.T) {
	floor := common.NewRect(0, 100, 200, 50)
	geom := NewGeometry([]common.Rect{floor})

	// Already sunk into the floor before this step: not a fresh crossing.
	b := bodyAt(10, 70, 20, 40)
	b.VelocityY = 10
	Step(b, Intent{}, geom, noGravity(), frame)
	if b.OnGround {
		t.Fatalf("pre-existing overlap must not resolve")
	}
	if b.Hitbox.Bottom() <= floor.Top() {
		t.Fatalf("hitbox was pushed out: bottom=%v", b.Hitbox.Bottom())
	}
}

func TestCrossedComparison(t *testing.T) {
	cases := []struct {
		name                    string
		current, previous, face float64
		want                    bool
	}{
		{"fresh_crossing", 101, 99, 100, true},
		{"previous_on_face", 101, 100, 100, true},
		{"current_on_face", 100, 99, 100, false},
		{"already_past", 102, 101, 100, false},
		{"not_reached", 99, 98, 100, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Crossed(c.current, c.previous, c.face); got != c.want {
				t.Fatalf("Crossed(%v,%v,%v) = %v", c.current, c.previous, c.face, got)
			}
		})
	}
}

func TestTunnelingBoundary(t *testing.T) {
	const thickness = 2.0
	plate := common.NewRect(0, 200, 100, thickness)
	geom := NewGeometry([]common.Rect{plate})

	cases := []struct {
		name     string
		velocity float64
		caught   bool
	}{
		// displacement 1.6 < thickness
		{"under_thickness", 100, true},
		// displacement 16 >= thickness, but the hitbox still overlaps the plate
		{"over_thickness_still_overlapping", 1000, true},
		// displacement 80 clears the plate and the hitbox entirely
		{"passes_through", 5000, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := bodyAt(10, 159.5, 20, 40)
			b.VelocityY = c.velocity
			Step(b, Intent{}, geom, noGravity(), frame)
			if b.OnGround != c.caught {
				t.Fatalf("OnGround=%v want %v (bottom=%v)", b.OnGround, c.caught, b.Hitbox.Bottom())
			}
			if c.caught && b.Hitbox.Bottom() != plate.Top() {
				t.Fatalf("bottom=%v want %v", b.Hitbox.Bottom(), plate.Top())
			}
		})
	}
}

func TestStepHorizontalWalls(t *testing.T) {
	wall := common.NewRect(200, 0, 40, 400)
	geom := NewGeometry([]common.Rect{wall})

	t.Run("moving_right_clamps_to_left_face", func(t *testing.T) {
		b := bodyAt(175, 100, 20, 40)
		Step(b, Intent{Direction: 1}, geom, noGravity(), frame)
		if b.Hitbox.Right() != wall.Left() {
			t.Fatalf("right=%v want %v", b.Hitbox.Right(), wall.Left())
		}
		if b.Direction != 1 {
			t.Fatalf("direction=%d", b.Direction)
		}
	})

	t.Run("moving_left_clamps_to_right_face", func(t *testing.T) {
		b := bodyAt(245, 100, 20, 40)
		Step(b, Intent{Direction: -5}, geom, noGravity(), frame)
		if b.Hitbox.Left() != wall.Right() {
			t.Fatalf("left=%v want %v", b.Hitbox.Left(), wall.Right())
		}
		if b.Direction != -1 {
			t.Fatalf("direction should clamp to -1, got %d", b.Direction)
		}
	})

	t.Run("free_move", func(t *testing.T) {
		b := bodyAt(0, 100, 20, 40)
		Step(b, Intent{Direction: 1}, geom, noGravity(), frame)
		want := noGravity().MoveSpeed * frame
		if b.Hitbox.X != want {
			t.Fatalf("x=%v want %v", b.Hitbox.X, want)
		}
	})
}

func TestStepJumpAndHeadHit(t *testing.T) {
	ceiling := common.NewRect(0, 60, 200, 40)
	geom := NewGeometry([]common.Rect{ceiling})

	b := bodyAt(10, 101, 20, 40)
	b.OnGround = true
	Step(b, Intent{Jump: true}, geom, noGravity(), frame)

	if b.Hitbox.Top() != ceiling.Bottom() {
		t.Fatalf("top=%v want %v", b.Hitbox.Top(), ceiling.Bottom())
	}
	if b.VelocityY != 0 {
		t.Fatalf("velocity=%v want 0", b.VelocityY)
	}
	if b.OnGround {
		t.Fatalf("jump must clear OnGround and a head hit must not set it")
	}
}

func TestStepJumpLaunchesUpward(t *testing.T) {
	geom := NewGeometry(nil)
	tuning := DefaultTuning()
	b := bodyAt(0, 0, 20, 40)
	b.OnGround = true

	Step(b, Intent{Jump: true}, geom, tuning, frame)
	want := tuning.JumpSpeed + tuning.Gravity*frame
	if b.VelocityY != want {
		t.Fatalf("velocity=%v want %v", b.VelocityY, want)
	}
	if b.OnGround {
		t.Fatalf("expected airborne after jump")
	}
}

func TestStepSeamBetweenTwoFloors(t *testing.T) {
	left := common.NewRect(0, 140, 100, 20)
	right := common.NewRect(100, 140, 100, 20)
	geom := NewGeometry([]common.Rect{left, right})

	b := bodyAt(90, 90, 20, 40)
	for i := 0; i < 60; i++ {
		Step(b, Intent{}, geom, DefaultTuning(), frame)
	}
	if b.Hitbox.Bottom() != 140 || !b.OnGround || b.VelocityY != 0 {
		t.Fatalf("bottom=%v onGround=%v vy=%v", b.Hitbox.Bottom(), b.OnGround, b.VelocityY)
	}
}

func TestStepVisualFollowsHitbox(t *testing.T) {
	b := NewBody(0, 0, DefaultSize())
	Step(b, Intent{Direction: 1}, NewGeometry(nil), DefaultTuning(), frame)

	hx, hy := b.Hitbox.Center()
	vx, vy := b.Visual.Center()
	if hx != vx || hy != vy {
		t.Fatalf("visual center (%v,%v) != hitbox center (%v,%v)", vx, vy, hx, hy)
	}
	if !b.Visual.ContainsX(b.Hitbox) {
		t.Fatalf("hitbox escaped the visual span")
	}
}

func TestZeroAreaGeometryIsInert(t *testing.T) {
	geom := NewGeometry([]common.Rect{common.NewRect(0, 140, 200, 0)})
	b := bodyAt(10, 99, 20, 40)
	Step(b, Intent{}, geom, DefaultTuning(), frame)
	if b.OnGround {
		t.Fatalf("zero-area rect must never collide")
	}
}

func TestRespawn(t *testing.T) {
	b := NewBody(32, 64, DefaultSize())
	b.VelocityY = 900
	b.Hitbox.Y = 5000
	b.Respawn()
	if b.Visual.X != 32 || b.Visual.Y != 64 || b.VelocityY != 0 {
		t.Fatalf("respawn left body at %v vy=%v", b.Visual, b.VelocityY)
	}
}
