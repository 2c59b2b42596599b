// Package rules evaluates the tengo scripts that turn raw telemetry into
// behavior judgements. Scripts live in prefabs/scripts and may be edited on
// disk while the game runs.
package rules

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/protocol/prefabs"
)

// Source loads script text by name.
type Source func(name string) ([]byte, error)

// Result exposes the globals a script defined.
type Result struct {
	compiled *tengo.Compiled
}

// Evaluate compiles and runs the named script with inputs bound as globals.
func Evaluate(name string, inputs map[string]any) (Result, error) {
	return EvaluateFrom(prefabs.LoadScript, name, inputs)
}

// EvaluateFrom is Evaluate with an explicit script source. A Go panic raised
// while the script runs, such as an integer divide by zero, is returned as
// an error.
func EvaluateFrom(src Source, name string, inputs map[string]any) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = Result{}, fmt.Errorf("rules: run %s: %v", name, r)
		}
	}()

	data, err := src(name)
	if err != nil {
		return Result{}, fmt.Errorf("rules: load %s: %w", name, err)
	}

	script := tengo.NewScript(data)
	for k, v := range inputs {
		if err := script.Add(k, v); err != nil {
			return Result{}, fmt.Errorf("rules: %s: bind %s: %w", name, k, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return Result{}, fmt.Errorf("rules: compile %s: %w", name, err)
	}
	if err := compiled.Run(); err != nil {
		return Result{}, fmt.Errorf("rules: run %s: %w", name, err)
	}
	return Result{compiled: compiled}, nil
}

func (r Result) Bool(name string) bool {
	if r.compiled == nil || !r.compiled.IsDefined(name) {
		return false
	}
	return r.compiled.Get(name).Bool()
}

func (r Result) String(name string) string {
	if r.compiled == nil || !r.compiled.IsDefined(name) {
		return ""
	}
	return strings.TrimSpace(r.compiled.Get(name).String())
}

// FastLearner runs the boot script. interactMS is negative when the operator
// never interacted.
func FastLearner(interactMS int64, thresholdMS int) (bool, error) {
	return fastLearnerFrom(prefabs.LoadScript, interactMS, thresholdMS)
}

func fastLearnerFrom(src Source, interactMS int64, thresholdMS int) (bool, error) {
	res, err := EvaluateFrom(src, "boot", map[string]any{
		"interact_ms":  interactMS,
		"threshold_ms": int64(thresholdMS),
	})
	if err != nil {
		return false, err
	}
	return res.Bool("fast_learner"), nil
}

// EndingInput is what the ending script judges.
type EndingInput struct {
	Decision    string
	Choice      string
	Path        string
	Empathy     int
	Logic       int
	FastLearner bool
	Order       float64
	Efficiency  float64
}

type Ending struct {
	Archetype string
	Summary   string
}

func Judge(in EndingInput) (Ending, error) {
	return judgeFrom(prefabs.LoadScript, in)
}

func judgeFrom(src Source, in EndingInput) (Ending, error) {
	res, err := EvaluateFrom(src, "ending", map[string]any{
		"decision":     in.Decision,
		"choice":       in.Choice,
		"path":         in.Path,
		"empathy":      int64(in.Empathy),
		"logic":        int64(in.Logic),
		"fast_learner": in.FastLearner,
		"order":        in.Order,
		"efficiency":   in.Efficiency,
	})
	if err != nil {
		return Ending{}, err
	}
	return Ending{Archetype: res.String("archetype"), Summary: res.String("summary")}, nil
}
