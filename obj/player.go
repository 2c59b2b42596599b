package obj

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/protocol/physics"
	"golang.org/x/image/colornames"
)

// playerState is the visual state derived from the body each frame.
type playerState interface {
	Name() string
	// Frame picks the animation frame for the given tick.
	Frame(p *Player) int
}

type idleState struct{}

func (idleState) Name() string        { return "idle" }
func (idleState) Frame(p *Player) int { return 0 }

type runningState struct{}

func (runningState) Name() string { return "running" }
func (runningState) Frame(p *Player) int {
	if p.frameCount <= 1 || p.ticksPerFrame <= 0 {
		return 0
	}
	return (p.ticks / p.ticksPerFrame) % p.frameCount
}

type jumpingState struct{}

func (jumpingState) Name() string        { return "jumping" }
func (jumpingState) Frame(p *Player) int { return 0 }

type fallingState struct{}

func (fallingState) Name() string        { return "falling" }
func (fallingState) Frame(p *Player) int { return 0 }

var (
	stateIdle    playerState = idleState{}
	stateRunning playerState = runningState{}
	stateJumping playerState = jumpingState{}
	stateFalling playerState = fallingState{}
)

// PlayerStyle is the player.yaml presentation data.
type PlayerStyle struct {
	Color       color.Color
	FlashFrames int
	FrameCount  int
	FPS         float64
}

// Player draws a physics.Body. It never changes the body.
type Player struct {
	body  *physics.Body
	state playerState
	style PlayerStyle

	ticks         int
	frameCount    int
	ticksPerFrame int
	flash         int
	facingLeft    bool
}

func NewPlayer(body *physics.Body, style PlayerStyle) *Player {
	if style.Color == nil {
		style.Color = colornames.Whitesmoke
	}
	tpf := 0
	if style.FPS > 0 {
		tpf = int(60 / style.FPS)
	}
	return &Player{
		body:          body,
		state:         stateIdle,
		style:         style,
		frameCount:    style.FrameCount,
		ticksPerFrame: tpf,
	}
}

// Flash starts the white interaction flash.
func (p *Player) Flash() { p.flash = p.style.FlashFrames }

func (p *Player) Flashing() bool { return p.flash > 0 }

func (p *Player) State() string { return p.state.Name() }

// Update advances animation timers and re-derives the visual state.
func (p *Player) Update() {
	p.ticks++
	if p.flash > 0 {
		p.flash--
	}
	switch {
	case p.body.Direction < 0:
		p.facingLeft = true
	case p.body.Direction > 0:
		p.facingLeft = false
	}

	next := stateIdle
	switch {
	case !p.body.OnGround && p.body.VelocityY < 0:
		next = stateJumping
	case !p.body.OnGround:
		next = stateFalling
	case p.body.Direction != 0:
		next = stateRunning
	}
	if next != p.state {
		p.state = next
		p.ticks = 0
	}
}

// Draw renders the visual rect with a bob for running frames and a visor
// showing the facing direction.
func (p *Player) Draw(screen *ebiten.Image, camX, camY float64) {
	v := p.body.Visual
	x := float32(v.X - camX)
	y := float32(v.Y - camY)
	w := float32(v.Width)
	h := float32(v.Height)

	if p.state.Frame(p)%2 == 1 {
		y -= 2
	}

	var body color.Color = p.style.Color
	if p.flash > 0 {
		body = color.White
	}
	vector.FillRect(screen, x, y, w, h, body, false)

	visorW := w * 0.4
	visorX := x + w - visorW - 4
	if p.facingLeft {
		visorX = x + 4
	}
	vector.FillRect(screen, visorX, y+h*0.2, visorW, h*0.12, colornames.Cyan, false)
}

// DrawHitbox outlines the collision box for debugging.
func (p *Player) DrawHitbox(screen *ebiten.Image, camX, camY float64) {
	hb := p.body.Hitbox
	vector.StrokeRect(screen, float32(hb.X-camX), float32(hb.Y-camY), float32(hb.Width), float32(hb.Height), 1, colornames.Red, false)
}
