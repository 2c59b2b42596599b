// Package gamestate holds the narrative state that survives scene changes.
//
// A Context is created once by the process driver and handed to every scene
// by pointer. Scenes mutate it; physics never does.
package gamestate

import (
	"fmt"
	"sort"
	"time"
)

// Choice is the level 2 branch decision.
type Choice string

const (
	ChoiceNone     Choice = ""
	ChoiceSurvivor Choice = "survivor"
	ChoiceData     Choice = "data"
)

// Valid reports whether c names a recorded branch.
func (c Choice) Valid() bool {
	return c == ChoiceSurvivor || c == ChoiceData
}

// Decision is the final level 4 decision.
type Decision string

const (
	DecisionNone      Decision = ""
	DecisionGrant     Decision = "grant"
	DecisionTerminate Decision = "terminate"
)

// Path is how the level 3 objective was completed.
type Path string

const (
	PathNone    Path = ""
	PathEmpathy Path = "empathy"
	PathLogic   Path = "logic"
)

// Behavior counter names defaulted by scenes.
const (
	CounterEmpathy = "empathy"
	CounterLogic   = "logic"
)

// Flags are progression gates.
type Flags struct {
	BootCompleted   bool
	Level1Completed bool
	Level2Choice    Choice
	Level3Path      Path
	Level4Decision  Decision
}

// Metrics is timing telemetry. A duration is only meaningful when its
// matching Has* field is set.
type Metrics struct {
	BootStart           time.Time
	TimeToFirstMove     time.Duration
	HasFirstMove        bool
	TimeToFirstInteract time.Duration
	HasFirstInteract    bool
}

// Behavior accumulates what the player's choices say about them.
type Behavior struct {
	FastLearner bool
	counters    map[string]int
}

// Default registers counter name with a zero value if it is not present yet.
func (b *Behavior) Default(name string) {
	if b.counters == nil {
		b.counters = map[string]int{}
	}
	if _, ok := b.counters[name]; !ok {
		b.counters[name] = 0
	}
}

// Inc adds one to a counter previously registered with Default. It reports
// false for unknown counters and leaves them untouched.
func (b *Behavior) Inc(name string) bool {
	if _, ok := b.counters[name]; !ok {
		return false
	}
	b.counters[name]++
	return true
}

// Counter returns a counter value and whether it has been registered.
func (b *Behavior) Counter(name string) (int, bool) {
	v, ok := b.counters[name]
	return v, ok
}

// Counters returns a copy of every registered counter.
func (b *Behavior) Counters() map[string]int {
	out := make(map[string]int, len(b.counters))
	for k, v := range b.counters {
		out[k] = v
	}
	return out
}

// Context is the shared narrative state.
type Context struct {
	Flags    Flags
	Metrics  Metrics
	Behavior Behavior
}

func New() *Context {
	return &Context{Behavior: Behavior{counters: map[string]int{}}}
}

// Entry is one rendered key/value pair of a Snapshot.
type Entry struct {
	Key   string
	Value string
}

// Snapshot renders the context as ordered key/value pairs for logs, the
// ending screen and the debrief export.
func (c *Context) Snapshot() []Entry {
	out := []Entry{
		{"flags.boot_completed", fmt.Sprint(c.Flags.BootCompleted)},
		{"flags.level1_completed", fmt.Sprint(c.Flags.Level1Completed)},
		{"flags.level2_choice", orUnset(string(c.Flags.Level2Choice))},
		{"flags.level3_path", orUnset(string(c.Flags.Level3Path))},
		{"flags.level4_decision", orUnset(string(c.Flags.Level4Decision))},
		{"metrics.time_to_first_move", durationOrUnset(c.Metrics.TimeToFirstMove, c.Metrics.HasFirstMove)},
		{"metrics.time_to_first_interact", durationOrUnset(c.Metrics.TimeToFirstInteract, c.Metrics.HasFirstInteract)},
		{"behavior.fast_learner", fmt.Sprint(c.Behavior.FastLearner)},
	}

	names := make([]string, 0, len(c.Behavior.counters))
	for name := range c.Behavior.counters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out = append(out, Entry{"behavior." + name, fmt.Sprint(c.Behavior.counters[name])})
	}
	return out
}

func orUnset(s string) string {
	if s == "" {
		return "unset"
	}
	return s
}

func durationOrUnset(d time.Duration, ok bool) string {
	if !ok {
		return "unset"
	}
	return d.Round(time.Millisecond).String()
}
