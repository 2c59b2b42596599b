package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/milk9111/protocol/gamestate"
	"github.com/milk9111/protocol/levels"
	"github.com/milk9111/protocol/physics"
	"github.com/milk9111/protocol/prefabs"
	"github.com/milk9111/protocol/scene"
)

func TestLevelsCommand(t *testing.T) {
	var out bytes.Buffer
	levelsCmd.SetOut(&out)
	if err := runLevels(levelsCmd, nil); err != nil {
		t.Fatalf("runLevels: %v\n%s", err, out.String())
	}
	for _, want := range []string{"boot", "level4", "data survivor", "grant shutdown"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestApplyTuning(t *testing.T) {
	cases := []struct {
		name string
		spec prefabs.GameSpec
		want physics.Tuning
	}{
		{"empty_uses_defaults", prefabs.GameSpec{}, physics.DefaultTuning()},
		{
			"custom",
			prefabs.GameSpec{Physics: prefabs.PhysicsSpec{Gravity: 100, JumpSpeed: -50, MoveSpeed: 10, MaxStep: 0.1}},
			physics.Tuning{Gravity: 100, JumpSpeed: -50, MoveSpeed: 10, MaxStep: 0.1},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := &scene.Factory{}
			applyTuning(f, &c.spec)
			if f.Tuning != c.want {
				t.Fatalf("tuning = %+v, want %+v", f.Tuning, c.want)
			}
		})
	}
}

func TestStyleFromEmbeddedSpecs(t *testing.T) {
	spec, err := prefabs.LoadGameSpec("")
	if err != nil {
		t.Fatal(err)
	}
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		t.Fatal(err)
	}
	style := styleFrom(spec, player)
	if style.Background == nil || style.Player.Color == nil {
		t.Fatalf("style has unset colors: %+v", style)
	}
	if style.Player.FlashFrames != player.FlashFrames || style.Player.FrameCount != player.Animation.FrameCount {
		t.Fatalf("player style = %+v", style.Player)
	}
}

func TestFreshEditSkipsUnchangedFiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.Mkdir(prefabs.Dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(prefabs.Dir, "game.yaml")
	if err := os.WriteFile(path, []byte("fade:\n  step: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	g := &Game{}
	if !g.freshEdit("game.yaml") {
		t.Fatalf("first event must apply")
	}
	if g.freshEdit("game.yaml") {
		t.Fatalf("repeat event for an unchanged file must be skipped")
	}
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	if !g.freshEdit("game.yaml") {
		t.Fatalf("edited file must apply")
	}
	if !g.freshEdit("missing.yaml") {
		t.Fatalf("unknown files always apply")
	}

	custom := &Game{configPath: "custom.yaml"}
	if !custom.freshEdit("game.yaml") || !custom.freshEdit("game.yaml") {
		t.Fatalf("custom configs always apply")
	}
}

func TestStartFailureClosesWatcher(t *testing.T) {
	w, err := prefabs.NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	f := &scene.Factory{Ctx: gamestate.New(), Levels: levels.Embedded{}, Logger: log.New(io.Discard)}
	g := &Game{manager: scene.NewManager(f, log.New(io.Discard)), watcher: w}

	// No level2 choice exists yet, so level3 cannot be built.
	if err := g.Start(scene.Level3); !errors.Is(err, scene.ErrInvalidBranch) {
		t.Fatalf("Start = %v", err)
	}
	select {
	case _, ok := <-w.Events:
		if ok {
			t.Fatalf("unexpected change event")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("watcher still open after a failed start")
	}
}
