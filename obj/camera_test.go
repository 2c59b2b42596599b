package obj

import (
	"math"
	"testing"
)

func TestCameraClampsToWorld(t *testing.T) {
	cases := []struct {
		name           string
		worldW, worldH float64
		targetX        float64
		targetY        float64
		wantX, wantY   float64
	}{
		{"inside", 4000, 2000, 2000, 1000, 2000, 1000},
		{"left_top_edge", 4000, 2000, -500, -500, 640, 360},
		{"right_bottom_edge", 4000, 2000, 9000, 9000, 3360, 1640},
		{"world_smaller_than_view", 600, 400, 0, 0, 300, 200},
		{"unbounded", 0, 0, -50, -70, -50, -70},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cam := NewCamera(1280, 720)
			cam.SetWorldBounds(c.worldW, c.worldH)
			cam.SnapTo(c.targetX, c.targetY)
			if cam.PosX != c.wantX || cam.PosY != c.wantY {
				t.Fatalf("pos = (%v,%v), want (%v,%v)", cam.PosX, cam.PosY, c.wantX, c.wantY)
			}
		})
	}
}

func TestCameraSmoothFollow(t *testing.T) {
	cam := NewCamera(100, 100)
	cam.SetSmooth(0.5)
	cam.SnapTo(0, 0)
	cam.Update(100, 0)
	if cam.PosX != 50 {
		t.Fatalf("half-way follow expected, got %v", cam.PosX)
	}
	x, y := cam.ViewTopLeft()
	if x != 0 || y != -50 {
		t.Fatalf("view top-left = (%v,%v)", x, y)
	}
}

func TestCameraSettlesOnTarget(t *testing.T) {
	cam := NewCamera(100, 100)
	cam.SnapTo(0, 0)
	for i := 0; i < 200; i++ {
		cam.Update(3, 2)
	}
	if math.Abs(cam.PosX-3) > 0.01 || math.Abs(cam.PosY-2) > 0.01 {
		t.Fatalf("camera stalled at (%v,%v), want (3,2)", cam.PosX, cam.PosY)
	}
	x, y := cam.ViewTopLeft()
	if x != -47 || y != -48 {
		t.Fatalf("view top-left = (%v,%v), want whole pixels (-47,-48)", x, y)
	}
}
