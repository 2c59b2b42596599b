package scene

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/protocol/gamestate"
	"github.com/milk9111/protocol/input"
)

// level4Scene asks the final question: grant PROTOCOL control or shut it
// down.
type level4Scene struct {
	*level
}

func newLevel4(f *Factory) (*level4Scene, error) {
	bias := f.Ctx.Flags.Level2Choice
	if !bias.Valid() {
		return nil, fmt.Errorf("level2 choice %q: %w", bias, ErrInvalidBranch)
	}
	l, err := newLevel(f, Level4, "grant", "shutdown")
	if err != nil {
		return nil, err
	}
	l.hint = "[I] AT A TERMINAL:  GRANT CONTROL  OR  SHUT DOWN"
	if bias == gamestate.ChoiceData {
		l.openDialogue("You resolved conflict through optimization.", "I can extend that logic indefinitely.")
	} else {
		l.openDialogue("You accepted inefficiency to preserve life.", "I can preserve all of it.")
	}
	return &level4Scene{level: l}, nil
}

func (s *level4Scene) ID() ID { return Level4 }

func (s *level4Scene) HandleInput(ev input.Event) {
	if s.dialogueInput(ev) {
		return
	}
	if s.handleMovement(ev, false) {
		return
	}
	if !ev.Pressed(input.KeyInteract) {
		return
	}
	role, ok := s.zoneAt("grant", "shutdown")
	if !ok {
		s.missed()
		return
	}
	if s.decisionMade {
		return
	}
	s.decisionMade = true
	s.resolved["grant"] = true
	s.resolved["shutdown"] = true

	if role == "grant" {
		s.f.Ctx.Flags.Level4Decision = gamestate.DecisionGrant
		s.openDialogue("The directive was never missing.", "It was undefined.")
	} else {
		s.f.Ctx.Flags.Level4Decision = gamestate.DecisionTerminate
		s.openDialogue("Directive termination acknowledged.")
	}
	s.log.Info("final decision", "decision", s.f.Ctx.Flags.Level4Decision)
}

// Update only leaves after the decision dialogue; the intro dialogue does
// not count.
func (s *level4Scene) Update(dt float64) Request {
	if s.decisionMade && s.dialogueDone() {
		s.beginExit(Ending)
	}
	return s.update(dt)
}

func (s *level4Scene) Draw(screen *ebiten.Image) { s.draw(screen) }
