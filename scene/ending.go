package scene

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/protocol/gamestate"
	"github.com/milk9111/protocol/input"
	"github.com/milk9111/protocol/narrative"
	"github.com/milk9111/protocol/obj"
	"github.com/milk9111/protocol/report"
	"github.com/milk9111/protocol/rules"
)

var errNoDebriefPath = errors.New("no debrief output configured")

// profiler is implemented by narrators that keep a running judgement.
type profiler interface {
	Profile() narrative.Profile
}

// endingScene shows the verdict. There is no physics here.
type endingScene struct {
	f       *Factory
	log     *log.Logger
	fade    *Fade
	verdict rules.Ending
	report  *obj.TextBox
	status  string
	exiting bool
}

func newEnding(f *Factory) (*endingScene, error) {
	lg := f.logger(Ending)
	verdict, err := rules.Judge(endingInput(f))
	if err != nil {
		// A broken rule script should not cost the player the ending.
		lg.Error("ending rule failed", "err", err)
		verdict = rules.Ending{Archetype: "THE OBSERVER"}
	}
	lg.Info("verdict", "archetype", verdict.Archetype)

	var src obj.TextSource
	if f.Buffer != nil {
		f.Buffer.Clear()
		src = f.Buffer
	}
	box := obj.NewTextBox(src, 90, 2)
	box.X, box.Y = 40, 140
	box.Color = f.Style.Text
	box.Sync()
	box.SetText("Compiling final report...")

	n := f.Narrator
	f.dispatch("end_report", func(ctx context.Context) string {
		return n.EndReport(ctx)
	})

	return &endingScene{
		f:       f,
		log:     lg,
		fade:    NewFade(f.FadeStep),
		verdict: verdict,
		report:  box,
	}, nil
}

func endingInput(f *Factory) rules.EndingInput {
	ctx := f.Ctx
	empathy, _ := ctx.Behavior.Counter(gamestate.CounterEmpathy)
	logic, _ := ctx.Behavior.Counter(gamestate.CounterLogic)
	in := rules.EndingInput{
		Decision:    string(ctx.Flags.Level4Decision),
		Choice:      string(ctx.Flags.Level2Choice),
		Path:        string(ctx.Flags.Level3Path),
		Empathy:     empathy,
		Logic:       logic,
		FastLearner: ctx.Behavior.FastLearner,
	}
	if p, ok := f.Narrator.(profiler); ok {
		prof := p.Profile()
		in.Order = prof.OrderVsFreedom
		in.Efficiency = prof.EfficiencyVsEmpathy
	}
	return in
}

func (s *endingScene) ID() ID { return Ending }

// Verdict is the archetype the rule script picked.
func (s *endingScene) Verdict() rules.Ending { return s.verdict }

func (s *endingScene) HandleInput(ev input.Event) {
	switch {
	case ev.Pressed(input.KeyCopy):
		s.copyReport()
	case ev.Pressed(input.KeyExport):
		s.export()
	case ev.Pressed(input.KeyConfirm):
		s.report.Skip()
	case ev.Pressed(input.KeyProceed):
		if s.f.Dev && !s.exiting {
			s.exiting = true
			s.fade.Start()
			s.log.Info("restarting run")
		}
	}
}

func (s *endingScene) copyReport() {
	if s.f.Clipboard == nil {
		s.status = "CLIPBOARD UNAVAILABLE"
		return
	}
	text := fmt.Sprintf("%s\n%s\n\n%s", s.verdict.Archetype, s.verdict.Summary, s.report.Text())
	if err := s.f.Clipboard(text); err != nil {
		s.log.Error("copy failed", "err", err)
		s.status = "COPY FAILED"
		return
	}
	s.status = "REPORT COPIED"
}

func (s *endingScene) export() {
	if err := s.writeDebrief(); err != nil {
		s.log.Error("export failed", "err", err)
		s.status = "EXPORT FAILED"
		return
	}
	s.status = "DEBRIEF WRITTEN TO " + s.f.DebriefOut
	s.log.Info("debrief exported", "path", s.f.DebriefOut)
}

func (s *endingScene) writeDebrief() error {
	if s.f.DebriefOut == "" {
		return errNoDebriefPath
	}
	d := report.Debrief{
		Archetype: s.verdict.Archetype,
		Summary:   s.verdict.Summary,
		Report:    s.report.Text(),
		Entries:   s.f.Ctx.Snapshot(),
		Generated: s.f.now(),
	}
	if p, ok := s.f.Narrator.(profiler); ok {
		prof := p.Profile()
		d.Order, d.Efficiency = prof.OrderVsFreedom, prof.EfficiencyVsEmpathy
	}
	return report.WriteFile(s.f.DebriefOut, d)
}

func (s *endingScene) Update(dt float64) Request {
	s.report.Update()
	s.fade.SetStep(s.f.FadeStep)
	if s.exiting && s.fade.Update() {
		// A new run starts from a clean context.
		*s.f.Ctx = *gamestate.New()
		return Request{Next: Boot}
	}
	return Request{}
}

func (s *endingScene) Draw(screen *ebiten.Image) {
	style := s.f.Style
	screen.Fill(style.Background)
	obj.DrawText(screen, "PROTOCOL // FINAL EVALUATION", 40, 40, style.Zone)
	obj.DrawText(screen, s.verdict.Archetype, 40, 70, style.Text)
	obj.DrawText(screen, s.verdict.Summary, 40, 90, style.Text)
	s.report.Draw(screen)

	sw, sh := s.f.screen()
	y := 140.0
	for _, e := range s.f.Ctx.Snapshot() {
		obj.DrawText(screen, e.Key+": "+e.Value, sw-420, y, style.Geometry)
		y += 16
	}

	hint := "[C] COPY  [P] EXPORT PDF"
	if s.f.Dev {
		hint += "  [ENTER] RESTART"
	}
	obj.DrawText(screen, hint, 40, sh-40, style.Text)
	if s.status != "" {
		obj.DrawText(screen, s.status, 40, sh-60, style.Zone)
	}
	s.fade.Draw(screen)
}
