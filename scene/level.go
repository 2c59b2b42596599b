package scene

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/protocol/common"
	"github.com/milk9111/protocol/input"
	"github.com/milk9111/protocol/obj"
	"github.com/milk9111/protocol/physics"
	"github.com/milk9111/protocol/world"
)

// level is the playable part every gameplay scene shares: a body on static
// geometry, interaction zones, a dialogue slot and the exit fade.
type level struct {
	id     ID
	f      *Factory
	log    *log.Logger
	layout *world.Layout
	body   *physics.Body
	player *obj.Player
	camera *obj.Camera
	fade   *Fade

	dialogue  *Dialogue
	message   *obj.TextBox
	narration *obj.TextBox
	hint      string
	style     Style

	left, right int
	jumpQueued  bool

	// decisionMade guards the scene's one narrative choice.
	decisionMade bool
	exiting      bool
	next         ID
	// resolved zones are no longer outlined.
	resolved map[string]bool
}

func newLevel(f *Factory, id ID, zones ...string) (*level, error) {
	if f.Levels == nil {
		return nil, fmt.Errorf("no level loader")
	}
	lvl, err := f.Levels.Load(string(id))
	if err != nil {
		return nil, err
	}
	layout, err := world.Build(lvl)
	if err != nil {
		return nil, err
	}
	if err := layout.RequireZones(zones...); err != nil {
		return nil, err
	}

	size := f.Size
	if size.HitboxWidth <= 0 || size.HitboxHeight <= 0 {
		size = physics.DefaultSize()
	}
	body := physics.NewBody(layout.SpawnX, layout.SpawnY, size)

	sw, sh := f.screen()
	cam := obj.NewCamera(sw, sh)
	cam.SetWorldBounds(layout.Bounds.Width, layout.Bounds.Height)
	cam.SnapTo(body.Visual.Center())

	message := obj.NewTextBox(nil, 60, 2)
	message.X, message.Y = 40, 40
	message.Color = f.Style.Text

	var src obj.TextSource
	if f.Buffer != nil {
		src = f.Buffer
	}
	narration := obj.NewTextBox(src, 80, 1)
	narration.X, narration.Y = 40, sh-200
	narration.Color = f.Style.Text

	l := &level{
		id:        id,
		f:         f,
		log:       f.logger(id),
		layout:    layout,
		body:      body,
		player:    obj.NewPlayer(body, f.Style.Player),
		camera:    cam,
		fade:      NewFade(f.FadeStep),
		message:   message,
		narration: narration,
		resolved:  map[string]bool{},
		style:     f.Style,
	}
	// Text delivered before this scene existed belongs to the last one.
	narration.Sync()
	l.log.Debug("level ready", "spawn_x", layout.SpawnX, "spawn_y", layout.SpawnY, "rects", layout.Geometry.Len(), "zones", len(layout.Zones))
	return l, nil
}

// handleMovement tracks held direction keys and the jump press edge. Key
// releases are always honored so a key let go during dialogue does not
// stay held.
func (l *level) handleMovement(ev input.Event, blocked bool) bool {
	switch ev.Key {
	case input.KeyLeft, input.KeyRight:
		held := &l.left
		if ev.Key == input.KeyRight {
			held = &l.right
		}
		if ev.Type == input.KeyUp {
			*held = max(0, *held-1)
			return true
		}
		if !blocked {
			*held++
		}
		return true
	case input.KeyJump:
		if ev.Type == input.KeyDown && !blocked {
			l.jumpQueued = true
		}
		return true
	}
	return false
}

// dialogueInput routes events to an open dialogue. It reports whether the
// scene should ignore the event.
func (l *level) dialogueInput(ev input.Event) bool {
	if l.dialogue == nil || l.dialogue.Finished() {
		return false
	}
	if ev.Type == input.KeyUp {
		l.handleMovement(ev, true)
	}
	return l.dialogue.HandleInput(ev)
}

func (l *level) direction() int {
	d := 0
	if l.left > 0 {
		d--
	}
	if l.right > 0 {
		d++
	}
	return d
}

// inZone tests the hitbox against the zone grown by the interact margin.
func (l *level) inZone(role string) bool {
	z, ok := l.layout.Zone(role)
	if !ok {
		return false
	}
	m := l.f.InteractMargin
	return l.body.Hitbox.Intersects(z.Inflate(m, m))
}

// zoneAt returns the first listed role the player can interact with.
func (l *level) zoneAt(roles ...string) (string, bool) {
	for _, r := range roles {
		if l.inZone(r) {
			return r, true
		}
	}
	return "", false
}

func (l *level) missed() {
	l.log.Debug("interact missed", "hitbox", l.body.Hitbox)
}

// beginExit starts the exit fade toward next. Later calls are ignored.
func (l *level) beginExit(next ID) {
	if l.exiting {
		return
	}
	l.exiting = true
	l.next = next
	l.fade.Start()
	l.log.Info("exiting", "next", next)
}

func (l *level) openDialogue(lines ...string) {
	l.dialogue = NewDialogue(lines...)
}

// dialogueDone reports whether a dialogue was opened and has been dismissed.
func (l *level) dialogueDone() bool {
	return l.dialogue != nil && l.dialogue.Finished()
}

func (l *level) update(dt float64) Request {
	dt = l.f.Tuning.ClampStep(dt)

	intent := physics.Intent{Direction: l.direction(), Jump: l.jumpQueued}
	l.jumpQueued = false
	if l.dialogue != nil && !l.dialogue.Finished() {
		intent = physics.Intent{}
	}
	physics.Step(l.body, intent, l.layout.Geometry, l.f.Tuning, dt)

	_, sh := l.f.screen()
	if l.body.Hitbox.Top() > l.layout.Bounds.Bottom()+sh {
		sx, sy := l.body.Spawn()
		l.log.Debug("fell out of the level, respawning", "x", sx, "y", sy)
		l.body.Respawn()
	}

	l.player.Update()
	l.camera.Update(l.body.Visual.Center())
	l.message.Update()
	l.narration.Update()
	if l.dialogue != nil {
		l.dialogue.Update()
	}

	l.fade.SetStep(l.f.FadeStep)
	if l.exiting && l.fade.Update() {
		return Request{Next: l.next}
	}
	return Request{}
}

func (l *level) draw(screen *ebiten.Image) {
	style := l.style
	screen.Fill(style.Background)
	camX, camY := l.camera.ViewTopLeft()

	for _, r := range l.layout.Geometry.Rects() {
		vector.FillRect(screen, float32(r.X-camX), float32(r.Y-camY), float32(r.Width), float32(r.Height), style.Geometry, false)
	}
	for role, z := range l.layout.Zones {
		if l.resolved[role] {
			continue
		}
		drawZone(screen, z, camX, camY, style)
		obj.DrawText(screen, role, z.X-camX, z.Y-camY-18, style.Zone)
	}

	l.player.Draw(screen, camX, camY)
	if l.f.Dev {
		l.layout.Geometry.DebugDraw(obj.NewGeometryDrawer(screen, camX, camY))
		l.player.DrawHitbox(screen, camX, camY)
	}

	if l.hint != "" {
		_, sh := l.f.screen()
		obj.DrawText(screen, l.hint, 40, sh-40, style.Text)
	}
	l.message.Draw(screen)
	l.narration.Draw(screen)
	if l.dialogue != nil {
		l.dialogue.Draw(screen, style.Text)
	}
	l.fade.Draw(screen)
}

func drawZone(screen *ebiten.Image, z common.Rect, camX, camY float64, style Style) {
	vector.StrokeRect(screen, float32(z.X-camX), float32(z.Y-camY), float32(z.Width), float32(z.Height), 2, style.Zone, false)
}
