package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is the on-disk level format. Layer cells and entity positions are in
// tile units.
type Level struct {
	Name      string      `json:"name"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
}

// Entity types understood by world.Build.
const (
	EntitySpawn    = "spawn"
	EntityPlatform = "platform"
	EntityZone     = "zone"
)

type Entity struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// String returns a string prop, or "" when it is missing or not a string.
func (e Entity) String(key string) string {
	s, _ := e.Props[key].(string)
	return s
}

// Float returns a numeric prop, or def when it is missing.
func (e Entity) Float(key string, def float64) float64 {
	switch v := e.Props[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

// Load reads an embedded level by name. The .json suffix is optional.
func Load(name string) (*Level, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(name, ".json")
	}
	return &lvl, nil
}

// Loader resolves level names. Tests substitute in-memory levels.
type Loader interface {
	Load(name string) (*Level, error)
}

// Embedded loads levels from LevelsFS.
type Embedded struct{}

func (Embedded) Load(name string) (*Level, error) { return Load(name) }
