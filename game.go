package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/joho/godotenv"
	"github.com/milk9111/protocol/common"
	"github.com/milk9111/protocol/gamestate"
	"github.com/milk9111/protocol/input"
	"github.com/milk9111/protocol/levels"
	"github.com/milk9111/protocol/narrative"
	"github.com/milk9111/protocol/obj"
	"github.com/milk9111/protocol/physics"
	"github.com/milk9111/protocol/prefabs"
	"github.com/milk9111/protocol/scene"
	"github.com/spf13/cobra"
	"golang.design/x/clipboard"
)

const frameDT = 1.0 / 60.0

type Game struct {
	width, height float64
	debug         bool

	input   *obj.Input
	manager *scene.Manager
	factory *scene.Factory
	logger  *log.Logger

	watcher    *prefabs.Watcher
	configPath string
	// seen holds the last applied modification time per prefab file.
	seen map[string]time.Time

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
}

func runGame(_ *cobra.Command, _ []string) error {
	logger := newLogger(flagDebug)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("could not read .env", "err", err)
	}

	spec, err := prefabs.LoadGameSpec(flagConfig)
	if err != nil {
		return err
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}

	start := scene.ID(spec.StartScene)
	if flagScene != "" {
		start = scene.ID(flagScene)
	}
	if start == "" {
		start = scene.Boot
	}
	if start, err = scene.ParseID(string(start)); err != nil {
		return err
	}

	game, err := NewGame(spec, playerSpec, logger)
	if err != nil {
		return err
	}
	defer game.Close()
	if err := game.Start(start); err != nil {
		return err
	}

	if flagMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(game.width), int(game.height))
	ebiten.SetWindowTitle(spec.Window.Title)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func NewGame(spec *prefabs.GameSpec, playerSpec *prefabs.PlayerSpec, logger *log.Logger) (*Game, error) {
	w, h := float64(spec.Window.Width), float64(spec.Window.Height)
	if w <= 0 || h <= 0 {
		w, h = common.BaseWidth, common.BaseHeight
	}

	keyEnv := spec.Narrative.APIKeyEnv
	if keyEnv == "" {
		keyEnv = "GROQ_API_KEY"
	}
	narrator := narrative.New(narrative.Config{
		APIKey:      os.Getenv(keyEnv),
		BaseURL:     spec.Narrative.BaseURL,
		Model:       spec.Narrative.Model,
		Temperature: spec.Narrative.Temperature,
		Offline:     flagOffline,
	}, logger.WithPrefix("narrative"))
	buf := &narrative.Buffer{}

	f := &scene.Factory{
		Ctx:        gamestate.New(),
		Narrator:   narrator,
		Dispatcher: narrative.NewDispatcher(buf, logger.WithPrefix("dispatch")),
		Buffer:     buf,
		Levels:     levels.Embedded{},
		Size: physics.Size{
			VisualWidth:  playerSpec.Visual.Width,
			VisualHeight: playerSpec.Visual.Height,
			HitboxWidth:  playerSpec.Hitbox.Width,
			HitboxHeight: playerSpec.Hitbox.Height,
		},
		ScreenWidth:  w,
		ScreenHeight: h,
		Style:        styleFrom(spec, playerSpec),
		Logger:       logger,
		Dev:          flagDebug,
		DebriefOut:   flagDebriefOut,
	}
	applyTuning(f, spec)

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", "err", err)
	} else {
		f.Clipboard = func(text string) error {
			clipboard.Write(clipboard.FmtText, []byte(text))
			return nil
		}
	}

	g := &Game{
		width:      w,
		height:     h,
		debug:      flagDebug,
		input:      obj.NewInput(),
		manager:    scene.NewManager(f, logger.WithPrefix("scenes")),
		factory:    f,
		logger:     logger,
		configPath: flagConfig,
	}
	g.pauseUI = NewPauseUI(g)

	if g.debug {
		dirs := []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")}
		if g.configPath != "" {
			dirs = append(dirs, filepath.Dir(g.configPath))
		}
		if wt, err := prefabs.NewWatcher(existing(dirs)...); err != nil {
			logger.Warn("hot reload disabled", "err", err)
		} else {
			g.watcher = wt
			logger.Info("watching prefabs for changes")
		}
	}
	return g, nil
}

func existing(dirs []string) []string {
	out := dirs[:0]
	for _, d := range dirs {
		if st, err := os.Stat(d); err == nil && st.IsDir() {
			out = append(out, d)
		}
	}
	return out
}

func applyTuning(f *scene.Factory, spec *prefabs.GameSpec) {
	t := physics.DefaultTuning()
	if p := spec.Physics; p.Gravity != 0 || p.JumpSpeed != 0 || p.MoveSpeed != 0 {
		t = physics.Tuning{Gravity: p.Gravity, JumpSpeed: p.JumpSpeed, MoveSpeed: p.MoveSpeed, MaxStep: p.MaxStep}
	}
	f.Tuning = t
	f.FadeStep = spec.Fade.Step
	f.InteractMargin = spec.Interact.Margin
	f.FastLearnerMS = spec.Boot.FastLearnerMS
}

func styleFrom(spec *prefabs.GameSpec, playerSpec *prefabs.PlayerSpec) scene.Style {
	def := scene.DefaultStyle()
	p := spec.Palette
	return scene.Style{
		Background: p.Background.Or(def.Background),
		Geometry:   p.Geometry.Or(def.Geometry),
		Zone:       p.Zone.Or(def.Zone),
		Text:       p.Text.Or(def.Text),
		Player: obj.PlayerStyle{
			Color:       playerSpec.Color.Or(def.Player.Color),
			FlashFrames: playerSpec.FlashFrames,
			FrameCount:  playerSpec.Animation.FrameCount,
			FPS:         playerSpec.Animation.FPS,
		},
	}
}

// Start builds the first scene. On failure the game is closed so the prefab
// watcher does not outlive it.
func (g *Game) Start(id scene.ID) error {
	if err := g.manager.Start(id); err != nil {
		g.Close()
		return err
	}
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.reload()

	events := g.input.Poll()
	for _, ev := range events {
		if ev.Pressed(input.KeyPause) {
			g.paused = !g.paused
		}
	}
	if g.paused {
		// Releases still reach the scene so no key stays held.
		for _, ev := range events {
			if ev.Type == input.KeyUp {
				g.manager.HandleInput(ev)
			}
		}
		g.pauseUI.Update()
		return nil
	}

	for _, ev := range events {
		g.manager.HandleInput(ev)
	}
	if err := g.manager.Update(frameDT); err != nil {
		g.logger.Error("scene transition failed", "err", err)
		return err
	}
	return nil
}

// reload applies prefab edits picked up by the watcher. Rule scripts are read
// on every evaluation, so only YAML edits need work here.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case c, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if c.Kind == prefabs.ScriptChanged {
				g.logger.Info("rule script changed", "name", c.Name)
				continue
			}
			if !g.freshEdit(c.Name) {
				continue
			}
			spec, err := prefabs.LoadGameSpec(g.configPath)
			if err != nil {
				g.logger.Error("reload failed", "name", c.Name, "err", err)
				continue
			}
			applyTuning(g.factory, spec)
			g.logger.Info("tuning reloaded", "name", c.Name, "gravity", g.factory.Tuning.Gravity)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("watch error", "err", err)
			}
		default:
			return
		}
	}
}

// freshEdit reports whether a prefab file changed since it was last applied.
// Editors often emit several events for one save. With a custom config, or
// for files that cannot be stat'ed, every event counts as fresh.
func (g *Game) freshEdit(name string) bool {
	if g.configPath != "" {
		return true
	}
	mt, ok := prefabs.ModTime(name)
	if !ok {
		return true
	}
	if g.seen == nil {
		g.seen = map[string]time.Time{}
	}
	if last, ok := g.seen[name]; ok && last.Equal(mt) {
		return false
	}
	g.seen[name] = mt
	return true
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.manager.Draw(screen)
	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  scene: %s", ebiten.ActualFPS(), g.manager.Current().ID()))
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.width, g.height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
