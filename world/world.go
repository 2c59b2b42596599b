// Package world turns a level file into the static collision geometry, spawn
// point and interaction zones a scene plays on.
package world

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/protocol/common"
	"github.com/milk9111/protocol/levels"
	"github.com/milk9111/protocol/physics"
)

var (
	ErrNoSpawn        = errors.New("level has no spawn")
	ErrMultipleSpawns = errors.New("level has more than one spawn")
	ErrMissingZone    = errors.New("level is missing a required zone")
	ErrDuplicateZone  = errors.New("level defines a zone role twice")
	ErrBadEntity      = errors.New("invalid level entity")
)

// Layout is everything a scene needs from a level.
type Layout struct {
	Name     string
	Geometry *physics.Geometry
	SpawnX   float64
	SpawnY   float64
	Zones    map[string]common.Rect
	Bounds   common.Rect
}

// Build validates lvl and produces its layout.
func Build(lvl *levels.Level) (*Layout, error) {
	if lvl == nil {
		return nil, fmt.Errorf("world: nil level")
	}

	rects := mergeTiles(lvl)
	l := &Layout{
		Name:   lvl.Name,
		Zones:  map[string]common.Rect{},
		Bounds: common.NewRect(0, 0, float64(lvl.Width*common.TileSize), float64(lvl.Height*common.TileSize)),
	}

	spawns := 0
	for i, e := range lvl.Entities {
		x := float64(e.X * common.TileSize)
		y := float64(e.Y * common.TileSize)
		switch e.Type {
		case levels.EntitySpawn:
			spawns++
			l.SpawnX, l.SpawnY = x, y
		case levels.EntityPlatform:
			r, err := entityRect(e, x, y)
			if err != nil {
				return nil, fmt.Errorf("world: %s entity %d: %w", lvl.Name, i, err)
			}
			rects = append(rects, r)
		case levels.EntityZone:
			role := strings.TrimSpace(e.String("role"))
			if role == "" {
				return nil, fmt.Errorf("world: %s entity %d: zone without role: %w", lvl.Name, i, ErrBadEntity)
			}
			if _, ok := l.Zones[role]; ok {
				return nil, fmt.Errorf("world: %s zone %q: %w", lvl.Name, role, ErrDuplicateZone)
			}
			r, err := entityRect(e, x, y)
			if err != nil {
				return nil, fmt.Errorf("world: %s entity %d: %w", lvl.Name, i, err)
			}
			l.Zones[role] = r
		default:
			return nil, fmt.Errorf("world: %s entity %d type %q: %w", lvl.Name, i, e.Type, ErrBadEntity)
		}
	}

	switch {
	case spawns == 0:
		return nil, fmt.Errorf("world: %s: %w", lvl.Name, ErrNoSpawn)
	case spawns > 1:
		return nil, fmt.Errorf("world: %s has %d spawns: %w", lvl.Name, spawns, ErrMultipleSpawns)
	}

	l.Geometry = physics.NewGeometry(rects)
	return l, nil
}

// Zone looks up an interaction zone by role.
func (l *Layout) Zone(role string) (common.Rect, bool) {
	r, ok := l.Zones[role]
	return r, ok
}

// RequireZones fails with ErrMissingZone naming the first absent role.
func (l *Layout) RequireZones(roles ...string) error {
	for _, role := range roles {
		if _, ok := l.Zones[role]; !ok {
			return fmt.Errorf("world: %s zone %q: %w", l.Name, role, ErrMissingZone)
		}
	}
	return nil
}

// entityRect sizes platform and zone entities. The w and h props are in tiles.
func entityRect(e levels.Entity, x, y float64) (common.Rect, error) {
	w := e.Float("w", 1) * common.TileSize
	h := e.Float("h", 1) * common.TileSize
	if w <= 0 || h <= 0 {
		return common.Rect{}, fmt.Errorf("%s at (%d,%d) has non-positive size: %w", e.Type, e.X, e.Y, ErrBadEntity)
	}
	return common.NewRect(x, y, w, h), nil
}

// mergeTiles greedily merges solid cells of every physics layer into as few
// rectangles as possible, expanding each run to the right first and then
// downward.
func mergeTiles(lvl *levels.Level) []common.Rect {
	var rects []common.Rect
	w, h := lvl.Width, lvl.Height
	for layerIdx, layer := range lvl.Layers {
		if len(layer) != w*h {
			continue
		}
		if layerIdx >= len(lvl.LayerMeta) || !lvl.LayerMeta[layerIdx].Physics {
			continue
		}

		processed := make([]bool, w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				idx := y*w + x
				if processed[idx] {
					continue
				}
				if layer[idx] == 0 {
					processed[idx] = true
					continue
				}

				rw := 1
				for x+rw < w {
					i := y*w + x + rw
					if processed[i] || layer[i] == 0 {
						break
					}
					rw++
				}

				rh := 1
			grow:
				for y+rh < h {
					for xi := x; xi < x+rw; xi++ {
						i := (y+rh)*w + xi
						if processed[i] || layer[i] == 0 {
							break grow
						}
					}
					rh++
				}

				for yy := y; yy < y+rh; yy++ {
					for xx := x; xx < x+rw; xx++ {
						processed[yy*w+xx] = true
					}
				}
				rects = append(rects, common.NewRect(
					float64(x*common.TileSize),
					float64(y*common.TileSize),
					float64(rw*common.TileSize),
					float64(rh*common.TileSize),
				))
			}
		}
	}
	return rects
}
