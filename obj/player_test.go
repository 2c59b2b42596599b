package obj

import (
	"testing"

	"github.com/milk9111/protocol/physics"
)

func TestPlayerStateFollowsBody(t *testing.T) {
	body := physics.NewBody(0, 0, physics.DefaultSize())
	p := NewPlayer(body, PlayerStyle{FlashFrames: 3, FrameCount: 4, FPS: 12})

	cases := []struct {
		name      string
		onGround  bool
		velocityY float64
		direction int
		want      string
	}{
		{"idle", true, 0, 0, "idle"},
		{"running", true, 0, 1, "running"},
		{"jumping", false, -300, 0, "jumping"},
		{"falling", false, 200, -1, "falling"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			body.OnGround = c.onGround
			body.VelocityY = c.velocityY
			body.Direction = c.direction
			p.Update()
			if p.State() != c.want {
				t.Fatalf("state = %s, want %s", p.State(), c.want)
			}
		})
	}
}

func TestPlayerFlashExpires(t *testing.T) {
	p := NewPlayer(physics.NewBody(0, 0, physics.DefaultSize()), PlayerStyle{FlashFrames: 2})
	p.Flash()
	if !p.Flashing() {
		t.Fatalf("expected flash")
	}
	p.Update()
	p.Update()
	if p.Flashing() {
		t.Fatalf("flash should expire after FlashFrames updates")
	}
}

func TestRunningFrames(t *testing.T) {
	body := physics.NewBody(0, 0, physics.DefaultSize())
	body.OnGround = true
	body.Direction = 1
	p := NewPlayer(body, PlayerStyle{FrameCount: 4, FPS: 12})

	seen := map[int]bool{}
	for i := 0; i < 40; i++ {
		p.Update()
		seen[p.state.Frame(p)] = true
	}
	if len(seen) != 4 {
		t.Fatalf("expected all 4 frames, saw %v", seen)
	}
}
