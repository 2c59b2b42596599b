package scene

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/protocol/input"
	"github.com/milk9111/protocol/obj"
)

// Dialogue shows lines one at a time with a typewriter reveal. Confirm
// completes the current line, or moves to the next one once it is complete.
type Dialogue struct {
	lines    []string
	index    int
	shown    int
	speed    int
	finished bool
}

func NewDialogue(lines ...string) *Dialogue {
	d := &Dialogue{lines: lines, speed: 1}
	if len(lines) == 0 {
		d.finished = true
	}
	return d
}

func (d *Dialogue) Finished() bool { return d.finished }

func (d *Dialogue) lineDone() bool {
	return d.shown >= len([]rune(d.lines[d.index]))
}

// HandleInput reports whether the event was consumed.
func (d *Dialogue) HandleInput(ev input.Event) bool {
	if d.finished {
		return false
	}
	if !ev.Pressed(input.KeyConfirm) {
		return true
	}
	if !d.lineDone() {
		d.shown = len([]rune(d.lines[d.index]))
		return true
	}
	d.index++
	d.shown = 0
	if d.index >= len(d.lines) {
		d.finished = true
	}
	return true
}

func (d *Dialogue) Update() {
	if d.finished || d.lineDone() {
		return
	}
	d.shown += d.speed
}

// Text is the revealed part of the current line.
func (d *Dialogue) Text() string {
	if d.finished {
		return ""
	}
	r := []rune(d.lines[d.index])
	return string(r[:min(d.shown, len(r))])
}

var dialogueBorder = color.NRGBA{R: 80, G: 255, B: 120, A: 255}

func (d *Dialogue) Draw(screen *ebiten.Image, textColor color.Color) {
	if d.finished {
		return
	}
	vector.FillRect(screen, 60, 520, 1160, 140, color.NRGBA{R: 10, G: 10, B: 10, A: 255}, false)
	vector.StrokeRect(screen, 60, 520, 1160, 140, 2, dialogueBorder, false)
	obj.DrawText(screen, d.Text(), 80, 540, textColor)
	if d.lineDone() {
		obj.DrawText(screen, "[SPACE]", 1140, 636, dialogueBorder)
	}
}
