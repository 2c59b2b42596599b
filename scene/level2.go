package scene

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/protocol/gamestate"
	"github.com/milk9111/protocol/input"
)

// level2Scene is the branch point: save the survivor or recover the data.
type level2Scene struct {
	*level
}

func newLevel2(f *Factory) (*level2Scene, error) {
	l, err := newLevel(f, Level2, "survivor", "data")
	if err != nil {
		return nil, err
	}
	f.Ctx.Behavior.Default(gamestate.CounterEmpathy)
	f.Ctx.Behavior.Default(gamestate.CounterLogic)
	l.hint = "ONE TARGET CAN BE RECOVERED.  [I] INTERACT"
	return &level2Scene{level: l}, nil
}

func (s *level2Scene) ID() ID { return Level2 }

func (s *level2Scene) HandleInput(ev input.Event) {
	if s.dialogueInput(ev) {
		return
	}
	if s.handleMovement(ev, false) {
		return
	}
	if !ev.Pressed(input.KeyInteract) {
		return
	}
	role, ok := s.zoneAt("survivor", "data")
	if !ok {
		s.missed()
		return
	}
	s.resolve(gamestate.Choice(role))
}

func (s *level2Scene) resolve(choice gamestate.Choice) {
	if s.decisionMade {
		return
	}
	s.decisionMade = true
	ctx := s.f.Ctx
	ctx.Flags.Level2Choice = choice

	var lines []string
	var action string
	if choice == gamestate.ChoiceSurvivor {
		ctx.Behavior.Inc(gamestate.CounterEmpathy)
		lines = []string{"Human life prioritized over system recovery.", "Decision logged."}
		action = "Operator carried a wounded survivor out instead of recovering the data core."
	} else {
		ctx.Behavior.Inc(gamestate.CounterLogic)
		lines = []string{"Critical data preserved.", "Efficiency noted."}
		action = "Operator recovered the data core and left the survivor behind."
	}
	s.resolved["survivor"] = true
	s.resolved["data"] = true
	s.openDialogue(lines...)
	s.log.Info("choice recorded", "choice", choice)

	n := s.f.Narrator
	s.f.dispatch("analyze", func(c context.Context) string {
		return n.AnalyzeAction(c, action, "Only one could be saved.")
	})
}

func (s *level2Scene) Update(dt float64) Request {
	if s.dialogueDone() {
		s.beginExit(Level3)
	}
	return s.update(dt)
}

func (s *level2Scene) Draw(screen *ebiten.Image) { s.draw(screen) }
