package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/protocol/input"
)

// KeyMap binds physical keys to logical actions. Several keys may map to
// the same action.
var KeyMap = map[ebiten.Key]input.Key{
	ebiten.KeyA:          input.KeyLeft,
	ebiten.KeyArrowLeft:  input.KeyLeft,
	ebiten.KeyD:          input.KeyRight,
	ebiten.KeyArrowRight: input.KeyRight,
	ebiten.KeySpace:      input.KeyJump,
	ebiten.KeyW:          input.KeyJump,
	ebiten.KeyArrowUp:    input.KeyJump,
	ebiten.KeyI:          input.KeyInteract,
	ebiten.KeyEnter:      input.KeyProceed,
	ebiten.KeyEscape:     input.KeyPause,
	ebiten.KeyT:          input.KeyDebugAnalyze,
	ebiten.KeyE:          input.KeyDebugTerminal,
	ebiten.KeyQ:          input.KeyDebugReport,
	ebiten.KeyC:          input.KeyCopy,
	ebiten.KeyP:          input.KeyExport,
}

// Enter both proceeds and confirms dialogue; the scene decides which applies.
var confirmKeys = []ebiten.Key{ebiten.KeyEnter, ebiten.KeySpace}

var padMap = map[ebiten.StandardGamepadButton]input.Key{
	ebiten.StandardGamepadButtonLeftLeft:    input.KeyLeft,
	ebiten.StandardGamepadButtonLeftRight:   input.KeyRight,
	ebiten.StandardGamepadButtonRightBottom: input.KeyJump,
	ebiten.StandardGamepadButtonRightLeft:   input.KeyInteract,
	ebiten.StandardGamepadButtonCenterRight: input.KeyProceed,
}

// Input turns this frame's keyboard and gamepad edges into events.
type Input struct {
	events []input.Event
}

func NewInput() *Input {
	return &Input{}
}

// Poll returns the key edges since the previous frame. The returned slice is
// reused by the next call.
func (i *Input) Poll() []input.Event {
	i.events = i.events[:0]

	for k, action := range KeyMap {
		if inpututil.IsKeyJustPressed(k) {
			i.events = append(i.events, input.Down(action))
		}
		if inpututil.IsKeyJustReleased(k) {
			i.events = append(i.events, input.Up(action))
		}
	}
	for _, k := range confirmKeys {
		if inpututil.IsKeyJustPressed(k) {
			i.events = append(i.events, input.Down(input.KeyConfirm))
		}
	}

	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for b, action := range padMap {
			if inpututil.IsStandardGamepadButtonJustPressed(id, b) {
				i.events = append(i.events, input.Down(action))
			}
			if inpututil.IsStandardGamepadButtonJustReleased(id, b) {
				i.events = append(i.events, input.Up(action))
			}
		}
	}
	return i.events
}
