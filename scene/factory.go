package scene

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/milk9111/protocol/gamestate"
	"github.com/milk9111/protocol/levels"
	"github.com/milk9111/protocol/narrative"
	"github.com/milk9111/protocol/obj"
	"github.com/milk9111/protocol/physics"
	"golang.org/x/image/colornames"
)

// Style is the palette scenes draw with.
type Style struct {
	Background color.Color
	Geometry   color.Color
	Zone       color.Color
	Text       color.Color
	Player     obj.PlayerStyle
}

func DefaultStyle() Style {
	return Style{
		Background: color.NRGBA{R: 5, G: 7, B: 12, A: 255},
		Geometry:   color.NRGBA{R: 43, G: 58, B: 85, A: 255},
		Zone:       colornames.Springgreen,
		Text:       color.NRGBA{R: 200, G: 255, B: 224, A: 255},
		Player:     obj.PlayerStyle{Color: colornames.Whitesmoke, FlashFrames: 12, FrameCount: 4, FPS: 8},
	}
}

// Factory builds scenes and carries everything they share.
type Factory struct {
	Ctx        *gamestate.Context
	Narrator   narrative.Narrator
	Dispatcher *narrative.Dispatcher
	Buffer     *narrative.Buffer
	Levels     levels.Loader

	// Tuning is read every frame, so edits apply to the running scene.
	Tuning         physics.Tuning
	Size           physics.Size
	InteractMargin float64
	FadeStep       int
	FastLearnerMS  int
	ScreenWidth    float64
	ScreenHeight   float64
	Style          Style

	Logger *log.Logger
	Now    func() time.Time

	// Dev enables the ending -> boot loop-back and hitbox overlays.
	Dev bool
	// DebriefOut is where the ending exports its PDF; empty disables export.
	DebriefOut string
	// Clipboard copies text for the ending screen; nil disables copying.
	Clipboard func(text string) error
}

func (f *Factory) New(id ID) (Scene, error) {
	if f.Ctx == nil {
		return nil, fmt.Errorf("build %s: no shared context", id)
	}
	var (
		s   Scene
		err error
	)
	switch id {
	case Boot:
		s, err = newBoot(f)
	case Level1:
		s, err = newLevel1(f)
	case Level2:
		s, err = newLevel2(f)
	case Level3:
		s, err = newLevel3(f)
	case Level4:
		s, err = newLevel4(f)
	case Ending:
		s, err = newEnding(f)
	default:
		return nil, fmt.Errorf("scene %q: %w", id, ErrUnknownScene)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", id, err)
	}
	return s, nil
}

func (f *Factory) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

func (f *Factory) logger(id ID) *log.Logger {
	l := f.Logger
	if l == nil {
		l = log.Default()
	}
	return l.WithPrefix(string(id))
}

// dispatch runs a narrative request in the background when a dispatcher is
// configured.
func (f *Factory) dispatch(name string, fn func(ctx context.Context) string) {
	if f.Dispatcher == nil || f.Narrator == nil {
		return
	}
	f.Dispatcher.Dispatch(name, fn)
}

func (f *Factory) screen() (float64, float64) {
	w, h := f.ScreenWidth, f.ScreenHeight
	if w <= 0 || h <= 0 {
		return 1280, 720
	}
	return w, h
}
