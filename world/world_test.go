package world

import (
	"errors"
	"testing"

	"github.com/milk9111/protocol/common"
	"github.com/milk9111/protocol/levels"
)

func grid(w, h int, solid ...[2]int) []int {
	cells := make([]int, w*h)
	for _, c := range solid {
		cells[c[1]*w+c[0]] = 1
	}
	return cells
}

func spawn(x, y int) levels.Entity { return levels.Entity{Type: levels.EntitySpawn, X: x, Y: y} }

func zone(role string, x, y int) levels.Entity {
	return levels.Entity{Type: levels.EntityZone, X: x, Y: y, Props: map[string]any{"role": role, "w": 1.0, "h": 2.0}}
}

func TestMergeTilesGreedy(t *testing.T) {
	// 4x3:
	// XX..
	// XX.X
	// ...X
	lvl := &levels.Level{
		Width:     4,
		Height:    3,
		Layers:    [][]int{grid(4, 3, [2]int{0, 0}, [2]int{1, 0}, [2]int{0, 1}, [2]int{1, 1}, [2]int{3, 1}, [2]int{3, 2})},
		LayerMeta: []levels.LayerMeta{{Physics: true}},
	}
	got := mergeTiles(lvl)
	ts := float64(common.TileSize)
	want := []common.Rect{
		common.NewRect(0, 0, 2*ts, 2*ts),
		common.NewRect(3*ts, ts, ts, 2*ts),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d rects %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rect %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMergeTilesSkipsDecorLayers(t *testing.T) {
	lvl := &levels.Level{
		Width:     2,
		Height:    1,
		Layers:    [][]int{{1, 1}, {1, 1}},
		LayerMeta: []levels.LayerMeta{{Physics: false}},
	}
	if got := mergeTiles(lvl); len(got) != 0 {
		t.Fatalf("decor layers must not produce geometry, got %v", got)
	}
}

func TestBuild(t *testing.T) {
	lvl := &levels.Level{
		Name:      "test",
		Width:     4,
		Height:    3,
		Layers:    [][]int{grid(4, 3, [2]int{0, 2}, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})},
		LayerMeta: []levels.LayerMeta{{Physics: true}},
		Entities: []levels.Entity{
			spawn(1, 0),
			zone("terminal", 3, 0),
			{Type: levels.EntityPlatform, X: 2, Y: 1, Props: map[string]any{"w": 2.0, "h": 0.25}},
		},
	}

	l, err := Build(lvl)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ts := float64(common.TileSize)
	if l.SpawnX != ts || l.SpawnY != 0 {
		t.Fatalf("spawn = (%v,%v)", l.SpawnX, l.SpawnY)
	}
	if l.Geometry.Len() != 2 {
		t.Fatalf("geometry has %d rects, want floor and platform", l.Geometry.Len())
	}
	if got := l.Geometry.At(1); got != common.NewRect(2*ts, ts, 2*ts, ts/4) {
		t.Fatalf("platform = %v", got)
	}
	if z, ok := l.Zone("terminal"); !ok || z != common.NewRect(3*ts, 0, ts, 2*ts) {
		t.Fatalf("terminal zone = %v, %v", z, ok)
	}
	if l.Bounds != common.NewRect(0, 0, 4*ts, 3*ts) {
		t.Fatalf("bounds = %v", l.Bounds)
	}
	if err := l.RequireZones("terminal"); err != nil {
		t.Fatalf("RequireZones: %v", err)
	}
	if err := l.RequireZones("terminal", "exit"); !errors.Is(err, ErrMissingZone) {
		t.Fatalf("RequireZones missing = %v", err)
	}
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name     string
		entities []levels.Entity
		want     error
	}{
		{"no_spawn", []levels.Entity{zone("terminal", 0, 0)}, ErrNoSpawn},
		{"two_spawns", []levels.Entity{spawn(0, 0), spawn(1, 0)}, ErrMultipleSpawns},
		{"duplicate_zone", []levels.Entity{spawn(0, 0), zone("data", 0, 0), zone("data", 1, 0)}, ErrDuplicateZone},
		{"zone_without_role", []levels.Entity{spawn(0, 0), {Type: levels.EntityZone}}, ErrBadEntity},
		{"unknown_type", []levels.Entity{spawn(0, 0), {Type: "enemy"}}, ErrBadEntity},
		{"flat_platform", []levels.Entity{spawn(0, 0), {Type: levels.EntityPlatform, Props: map[string]any{"h": 0.0}}}, ErrBadEntity},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Build(&levels.Level{Name: c.name, Width: 2, Height: 1, Entities: c.entities})
			if !errors.Is(err, c.want) {
				t.Fatalf("Build error = %v, want %v", err, c.want)
			}
		})
	}
}

func TestEmbeddedLevelsBuild(t *testing.T) {
	required := map[string][]string{
		"boot":   {"terminal"},
		"level1": {"terminal"},
		"level2": {"survivor", "data"},
		"level3": {"escort", "node"},
		"level4": {"grant", "shutdown"},
	}
	for name, zones := range required {
		t.Run(name, func(t *testing.T) {
			lvl, err := levels.Load(name)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			l, err := Build(lvl)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if err := l.RequireZones(zones...); err != nil {
				t.Fatalf("%v", err)
			}
			if l.Geometry.Len() == 0 {
				t.Fatalf("no geometry")
			}
		})
	}
}
