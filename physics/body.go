// Package physics integrates player movement and resolves collisions against
// static level geometry, one axis at a time.
package physics

import "github.com/milk9111/protocol/common"

// Body is the kinematic state of the player.
//
// Hitbox is the collision and gravity authority. Visual only frames the
// sprite and the camera; it follows Hitbox at the end of every step so that
// animation frames of different size never change collision behavior.
type Body struct {
	Visual common.Rect
	Hitbox common.Rect
	// PrevHitbox is the hitbox at the start of the current step. It is only
	// meaningful while that step is resolving collisions.
	PrevHitbox common.Rect

	VelocityY float64
	Direction int
	OnGround  bool

	spawnX, spawnY float64
}

// Size describes the visual footprint of the body and the narrower hitbox
// inside it.
type Size struct {
	VisualWidth, VisualHeight float64
	HitboxWidth, HitboxHeight float64
}

// DefaultSize matches the player prefab defaults.
func DefaultSize() Size {
	return Size{VisualWidth: 48, VisualHeight: 64, HitboxWidth: 20, HitboxHeight: 40}
}

// NewBody places the visual rect's top-left at the spawn point and centers the
// hitbox inside it.
func NewBody(spawnX, spawnY float64, size Size) *Body {
	hw := min(size.HitboxWidth, size.VisualWidth)
	hh := min(size.HitboxHeight, size.VisualHeight)
	b := &Body{
		Visual: common.NewRect(spawnX, spawnY, size.VisualWidth, size.VisualHeight),
		Hitbox: common.NewRect(0, 0, hw, hh),
		spawnX: spawnX,
		spawnY: spawnY,
	}
	b.Hitbox.SetCenter(b.Visual.Center())
	b.PrevHitbox = b.Hitbox
	return b
}

// Respawn puts the body back at its spawn point at rest.
func (b *Body) Respawn() {
	b.Visual.X = b.spawnX
	b.Visual.Y = b.spawnY
	b.Hitbox.SetCenter(b.Visual.Center())
	b.PrevHitbox = b.Hitbox
	b.VelocityY = 0
	b.Direction = 0
	b.OnGround = false
}

// Spawn returns the spawn point the body was created at.
func (b *Body) Spawn() (float64, float64) {
	return b.spawnX, b.spawnY
}
