package scene

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultFadeStep is the alpha added per frame, so a fade lasts 22 frames.
const DefaultFadeStep = 12

// Fade is a one-shot fade to black.
type Fade struct {
	alpha  int
	step   int
	active bool

	overlay *ebiten.Image
}

func NewFade(step int) *Fade {
	f := &Fade{}
	f.SetStep(step)
	return f
}

// SetStep changes the alpha added per frame, also mid-fade. Non-positive
// values select DefaultFadeStep.
func (f *Fade) SetStep(step int) {
	if step <= 0 {
		step = DefaultFadeStep
	}
	f.step = step
}

// Start arms the fade from fully transparent. It does nothing while a fade
// is already running.
func (f *Fade) Start() {
	if f.active {
		return
	}
	f.alpha = 0
	f.active = true
}

// Update advances the fade and reports true exactly once, on the frame the
// overlay first becomes opaque.
func (f *Fade) Update() bool {
	if !f.active {
		return false
	}
	f.alpha = min(255, f.alpha+f.step)
	if f.alpha == 255 {
		f.active = false
		return true
	}
	return false
}

func (f *Fade) Active() bool { return f.active }

func (f *Fade) Alpha() int { return f.alpha }

// Draw covers screen with black at the current alpha.
func (f *Fade) Draw(screen *ebiten.Image) {
	if f.alpha <= 0 {
		return
	}
	if f.overlay == nil {
		f.overlay = ebiten.NewImage(1, 1)
		f.overlay.Fill(color.Black)
	}
	b := screen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(b.Dx()), float64(b.Dy()))
	op.ColorScale.ScaleAlpha(float32(f.alpha) / 255)
	screen.DrawImage(f.overlay, op)
}
