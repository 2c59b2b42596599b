package obj

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// TextSource is polled once per frame for new text.
type TextSource interface {
	Get() (string, uint64)
}

// TextBox shows the latest narrative text with a typewriter reveal.
type TextBox struct {
	src     TextSource
	version uint64
	text    string
	lines   []string
	total   int
	shown   int
	speed   int
	width   int

	X, Y  float64
	Color color.Color
}

// NewTextBox wraps at width characters and reveals speed characters per
// frame.
func NewTextBox(src TextSource, width, speed int) *TextBox {
	if speed <= 0 {
		speed = 1
	}
	return &TextBox{src: src, width: width, speed: speed, Color: color.White}
}

// Update picks up new text and advances the reveal.
func (t *TextBox) Update() {
	if t.src != nil {
		if text, v := t.src.Get(); v != t.version {
			t.version = v
			t.SetText(text)
		}
	}
	if t.shown < t.total {
		t.shown = min(t.total, t.shown+t.speed)
	}
}

// Sync marks whatever the source holds now as already seen.
func (t *TextBox) Sync() {
	if t.src != nil {
		_, t.version = t.src.Get()
	}
}

// SetText replaces the content and restarts the reveal.
func (t *TextBox) SetText(text string) {
	t.text = text
	t.lines = Wrap(text, t.width)
	t.total = 0
	for _, l := range t.lines {
		t.total += len([]rune(l))
	}
	t.shown = 0
}

// Done reports whether all text is visible.
func (t *TextBox) Done() bool { return t.shown >= t.total }

// Skip reveals everything at once.
func (t *TextBox) Skip() { t.shown = t.total }

// Visible returns the revealed part of every line.
func (t *TextBox) Visible() []string {
	out := make([]string, 0, len(t.lines))
	left := t.shown
	for _, l := range t.lines {
		r := []rune(l)
		if left >= len(r) {
			out = append(out, l)
			left -= len(r)
			continue
		}
		if left > 0 {
			out = append(out, string(r[:left]))
		}
		break
	}
	return out
}

// Text is the full current content, revealed or not.
func (t *TextBox) Text() string { return t.text }

func (t *TextBox) Empty() bool { return t.total == 0 }

var textFace = ebtext.NewGoXFace(basicfont.Face7x13)

const lineHeight = 16

func (t *TextBox) Draw(screen *ebiten.Image) {
	if t.Empty() {
		return
	}
	vis := t.Visible()
	h := float32(len(t.lines)*lineHeight + 16)
	w := float32(t.width*7 + 24)
	vector.FillRect(screen, float32(t.X), float32(t.Y), w, h, color.NRGBA{A: 200}, false)
	vector.StrokeRect(screen, float32(t.X), float32(t.Y), w, h, 1, t.Color, false)
	DrawText(screen, strings.Join(vis, "\n"), t.X+12, t.Y+8, t.Color)
}

// DrawText draws multi-line text with the built-in face.
func DrawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = lineHeight
	ebtext.Draw(screen, s, textFace, op)
}

// Wrap breaks text into lines of at most width runes on word boundaries.
// Existing newlines are kept. Words longer than width are split.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return strings.Split(text, "\n")
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, w := range words {
			for len([]rune(w)) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				r := []rune(w)
				out = append(out, string(r[:width]))
				w = string(r[width:])
			}
			switch {
			case line == "":
				line = w
			case len([]rune(line))+1+len([]rune(w)) <= width:
				line += " " + w
			default:
				out = append(out, line)
				line = w
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
