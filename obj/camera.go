package obj

import (
	"math"

	"github.com/milk9111/protocol/common"
)

// Camera follows a world point and clamps the view to the level bounds.
type Camera struct {
	PosX float64
	PosY float64

	screenW float64
	screenH float64

	// smoothing factor (0..1). higher -> faster follow. e.g. 0.15
	smooth float64
	// world bounds in pixels (0 means unbounded)
	worldW float64
	worldH float64
}

func NewCamera(screenW, screenH float64) *Camera {
	return &Camera{
		PosX:    screenW / 2,
		PosY:    screenH / 2,
		screenW: screenW,
		screenH: screenH,
		smooth:  0.15,
	}
}

func (c *Camera) SetWorldBounds(w, h float64) {
	c.worldW = w
	c.worldH = h
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp(f, 0, 1)
}

// ViewTopLeft returns the world-space top-left of the current view, rounded
// to whole pixels so static geometry does not shimmer.
func (c *Camera) ViewTopLeft() (float64, float64) {
	return math.Round(c.PosX - c.screenW/2), math.Round(c.PosY - c.screenH/2)
}

// Update eases the camera toward the target. Call once per Update.
func (c *Camera) Update(targetX, targetY float64) {
	if c.smooth <= 0 {
		c.PosX, c.PosY = targetX, targetY
	} else {
		c.PosX = common.Lerp(c.PosX, targetX, c.smooth)
		c.PosY = common.Lerp(c.PosY, targetY, c.smooth)
	}
	c.constrain()
}

// SnapTo places the camera immediately, e.g. right after a scene loads.
func (c *Camera) SnapTo(x, y float64) {
	c.PosX, c.PosY = x, y
	c.constrain()
}

func (c *Camera) constrain() {
	c.PosX = clampAxis(c.PosX, c.screenW/2, c.worldW)
	c.PosY = clampAxis(c.PosY, c.screenH/2, c.worldH)
}

// clampAxis keeps a half-view inside [0, world]; a world smaller than the
// view is centered.
func clampAxis(pos, half, world float64) float64 {
	if world <= 0 {
		return pos
	}
	if world-half < half {
		return world / 2
	}
	return common.Clamp(pos, half, world-half)
}
