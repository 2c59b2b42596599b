package scene

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/protocol/input"
)

const (
	level1Mission  = "Sector 4 - Identifying Anomalies"
	level1Location = "Server Room"
)

type level1Scene struct {
	*level
}

func newLevel1(f *Factory) (*level1Scene, error) {
	l, err := newLevel(f, Level1, "terminal")
	if err != nil {
		return nil, err
	}
	l.hint = "[I] ACCESS TERMINAL  [ENTER] PROCEED"
	f.dispatch("mission", func(ctx context.Context) string {
		return f.Narrator.MissionBriefing(ctx, level1Mission).String()
	})
	return &level1Scene{level: l}, nil
}

func (s *level1Scene) ID() ID { return Level1 }

func (s *level1Scene) HandleInput(ev input.Event) {
	if s.handleMovement(ev, false) {
		return
	}
	n := s.f.Narrator
	switch {
	case ev.Pressed(input.KeyProceed):
		if s.f.Ctx.Flags.Level1Completed {
			s.beginExit(Level2)
		}
	case ev.Pressed(input.KeyInteract):
		if !s.inZone("terminal") {
			s.missed()
			return
		}
		if s.decisionMade {
			return
		}
		s.decisionMade = true
		s.f.Ctx.Flags.Level1Completed = true
		s.resolved["terminal"] = true
		s.player.Flash()
		s.f.dispatch("terminal_log", func(ctx context.Context) string {
			return n.TerminalLog(ctx, level1Location)
		})
	case ev.Pressed(input.KeyDebugAnalyze):
		s.f.dispatch("analyze", func(ctx context.Context) string {
			return n.AnalyzeAction(ctx, "Player inspected a broken drone.", "Curiosity expressed.")
		})
	case ev.Pressed(input.KeyDebugTerminal):
		s.f.dispatch("terminal_log", func(ctx context.Context) string {
			return n.TerminalLog(ctx, level1Location)
		})
	case ev.Pressed(input.KeyDebugReport):
		s.f.dispatch("end_report", func(ctx context.Context) string {
			return n.EndReport(ctx)
		})
	}
}

func (s *level1Scene) Update(dt float64) Request { return s.update(dt) }

func (s *level1Scene) Draw(screen *ebiten.Image) { s.draw(screen) }
