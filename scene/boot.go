package scene

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/protocol/input"
	"github.com/milk9111/protocol/rules"
)

const bootMessage = ">> SYSTEM INITIALIZED <<\n\nIdentity confirmed.\nAdaptation rate: OPTIMAL.\n\n[PRESS ENTER TO BEGIN]"

// bootScene measures how quickly the operator finds the terminal.
type bootScene struct {
	*level
	moved bool
}

func newBoot(f *Factory) (*bootScene, error) {
	l, err := newLevel(f, Boot, "terminal")
	if err != nil {
		return nil, err
	}
	f.Ctx.Metrics.BootStart = f.now()
	l.hint = "[A/D] MOVE  [SPACE] JUMP  [I] INTERACT"
	f.dispatch("briefing", func(ctx context.Context) string {
		return f.Narrator.Briefing(ctx)
	})
	return &bootScene{level: l}, nil
}

func (s *bootScene) ID() ID { return Boot }

func (s *bootScene) HandleInput(ev input.Event) {
	if ev.Type == input.KeyDown && !s.moved {
		s.moved = true
		m := &s.f.Ctx.Metrics
		m.TimeToFirstMove = s.f.now().Sub(m.BootStart)
		m.HasFirstMove = true
		s.log.Debug("first move", "after", m.TimeToFirstMove)
	}
	if s.handleMovement(ev, false) {
		return
	}

	switch {
	case ev.Pressed(input.KeyProceed):
		if s.decisionMade {
			s.beginExit(Level1)
		}
	case ev.Pressed(input.KeyInteract):
		if s.inZone("terminal") {
			s.startTerminal()
		} else {
			s.missed()
		}
	}
}

func (s *bootScene) startTerminal() {
	if s.decisionMade {
		return
	}
	s.decisionMade = true
	ctx := s.f.Ctx

	elapsed := s.f.now().Sub(ctx.Metrics.BootStart)
	ctx.Metrics.TimeToFirstInteract = elapsed
	ctx.Metrics.HasFirstInteract = true

	threshold := s.f.FastLearnerMS
	if threshold <= 0 {
		threshold = 4000
	}
	fast, err := rules.FastLearner(elapsed.Milliseconds(), threshold)
	if err != nil {
		s.log.Error("boot rule failed, using threshold", "err", err)
		fast = elapsed.Milliseconds() < int64(threshold)
	}
	ctx.Behavior.FastLearner = fast
	ctx.Flags.BootCompleted = true

	s.player.Flash()
	s.resolved["terminal"] = true
	s.message.SetText(bootMessage)
	s.log.Info("terminal accessed", "after", elapsed, "fast_learner", fast)
}

func (s *bootScene) Update(dt float64) Request { return s.update(dt) }

func (s *bootScene) Draw(screen *ebiten.Image) { s.draw(screen) }
