// Package input defines the discrete input events scenes consume.
//
// Events are produced once per frame by obj.Input from the keyboard; tests
// construct them directly.
package input

// Key is a logical action, not a physical key.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyJump
	KeyInteract
	KeyProceed
	KeyConfirm
	KeyPause
	KeyDebugAnalyze
	KeyDebugTerminal
	KeyDebugReport
	KeyCopy
	KeyExport
)

var keyNames = map[Key]string{
	KeyNone:          "none",
	KeyLeft:          "left",
	KeyRight:         "right",
	KeyJump:          "jump",
	KeyInteract:      "interact",
	KeyProceed:       "proceed",
	KeyConfirm:       "confirm",
	KeyPause:         "pause",
	KeyDebugAnalyze:  "debug_analyze",
	KeyDebugTerminal: "debug_terminal",
	KeyDebugReport:   "debug_report",
	KeyCopy:          "copy",
	KeyExport:        "export",
}

func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return "unknown"
}

type Type int

const (
	KeyDown Type = iota
	KeyUp
)

// Event is a single key edge.
type Event struct {
	Type Type
	Key  Key
}

func Down(k Key) Event { return Event{Type: KeyDown, Key: k} }
func Up(k Key) Event   { return Event{Type: KeyUp, Key: k} }

// Pressed reports whether e is the down edge of k.
func (e Event) Pressed(k Key) bool {
	return e.Type == KeyDown && e.Key == k
}
