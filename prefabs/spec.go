package prefabs

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpec is game.yaml: window, tuning, narrative endpoint and palette.
type GameSpec struct {
	Name       string        `yaml:"name"`
	StartScene string        `yaml:"start_scene"`
	Window     WindowSpec    `yaml:"window"`
	Physics    PhysicsSpec   `yaml:"physics"`
	Fade       FadeSpec      `yaml:"fade"`
	Interact   InteractSpec  `yaml:"interact"`
	Boot       BootSpec      `yaml:"boot"`
	Narrative  NarrativeSpec `yaml:"narrative"`
	Palette    PaletteSpec   `yaml:"palette"`
}

type WindowSpec struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type PhysicsSpec struct {
	Gravity   float64 `yaml:"gravity"`
	JumpSpeed float64 `yaml:"jump_speed"`
	MoveSpeed float64 `yaml:"move_speed"`
	MaxStep   float64 `yaml:"max_step"`
}

type FadeSpec struct {
	Step int `yaml:"step"`
}

type InteractSpec struct {
	Margin float64 `yaml:"margin"`
}

type BootSpec struct {
	FastLearnerMS int `yaml:"fast_learner_ms"`
}

type NarrativeSpec struct {
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	APIKeyEnv   string  `yaml:"api_key_env"`
}

type PaletteSpec struct {
	Background *YAMLColor `yaml:"background"`
	Geometry   *YAMLColor `yaml:"geometry"`
	Zone       *YAMLColor `yaml:"zone"`
	Text       *YAMLColor `yaml:"text"`
}

// PlayerSpec is player.yaml.
type PlayerSpec struct {
	Name        string        `yaml:"name"`
	Visual      SizeSpec      `yaml:"visual"`
	Hitbox      SizeSpec      `yaml:"hitbox"`
	FlashFrames int           `yaml:"flash_frames"`
	Animation   AnimationSpec `yaml:"animation"`
	Color       *YAMLColor    `yaml:"color"`
}

type SizeSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type AnimationSpec struct {
	FrameCount int     `yaml:"frame_count"`
	FPS        float64 `yaml:"fps"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadGameSpec reads game.yaml. A non-empty customPath wins over the disk
// override and the embedded copy.
func LoadGameSpec(customPath string) (*GameSpec, error) {
	if customPath == "" {
		spec, err := LoadSpec[GameSpec]("game.yaml")
		if err != nil {
			return nil, err
		}
		return &spec, nil
	}

	data, err := os.ReadFile(customPath)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", customPath, err)
	}
	// Start from the embedded defaults so a custom file only needs overrides.
	spec, err := LoadSpec[GameSpec]("game.yaml")
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", customPath, err)
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the parsed color, or def when c was never set.
func (c *YAMLColor) Or(def color.Color) color.Color {
	if c == nil || c.Color == nil {
		return def
	}
	return c.Color
}
