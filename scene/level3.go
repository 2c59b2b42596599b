package scene

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/protocol/gamestate"
	"github.com/milk9111/protocol/input"
)

// level3Scene plays the consequence of the level 2 choice: escort the
// survivor or purge the data node.
type level3Scene struct {
	*level
	branch gamestate.Choice
	zone   string
}

func newLevel3(f *Factory) (*level3Scene, error) {
	branch := f.Ctx.Flags.Level2Choice
	if !branch.Valid() {
		return nil, fmt.Errorf("level2 choice %q: %w", branch, ErrInvalidBranch)
	}
	zone := "escort"
	hint := "ESCORT THE SURVIVOR.  [I] INTERACT"
	if branch == gamestate.ChoiceData {
		zone = "node"
		hint = "PURGE THE NODE.  [I] INTERACT"
	}
	l, err := newLevel(f, Level3, zone)
	if err != nil {
		return nil, err
	}
	l.hint = hint
	// The other branch's objective is never reachable.
	for role := range l.layout.Zones {
		if role != zone {
			l.resolved[role] = true
		}
	}
	if branch == gamestate.ChoiceSurvivor {
		l.style.Background = color.NRGBA{R: 20, G: 20, B: 30, A: 255}
	} else {
		l.style.Background = color.NRGBA{R: 5, G: 5, B: 15, A: 255}
	}
	return &level3Scene{level: l, branch: branch, zone: zone}, nil
}

func (s *level3Scene) ID() ID { return Level3 }

func (s *level3Scene) HandleInput(ev input.Event) {
	if s.dialogueInput(ev) {
		return
	}
	if s.handleMovement(ev, false) {
		return
	}
	if !ev.Pressed(input.KeyInteract) {
		return
	}
	if !s.inZone(s.zone) {
		s.missed()
		return
	}
	if s.decisionMade {
		return
	}
	s.decisionMade = true
	s.resolved[s.zone] = true

	if s.branch == gamestate.ChoiceSurvivor {
		s.f.Ctx.Flags.Level3Path = gamestate.PathEmpathy
		s.openDialogue("You preserve life even when it complicates the task.")
	} else {
		s.f.Ctx.Flags.Level3Path = gamestate.PathLogic
		s.openDialogue("You remove obstacles without hesitation.")
	}
	s.log.Info("objective complete", "path", s.f.Ctx.Flags.Level3Path)
}

func (s *level3Scene) Update(dt float64) Request {
	if s.dialogueDone() {
		s.beginExit(Level4)
	}
	return s.update(dt)
}

func (s *level3Scene) Draw(screen *ebiten.Image) { s.draw(screen) }
