// Package scene sequences the game: boot, four levels and the ending. Each
// scene owns its body, geometry and fade; shared narrative state lives in a
// gamestate.Context that the Factory hands to every scene it builds.
package scene

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/protocol/input"
)

type ID string

const (
	Boot   ID = "boot"
	Level1 ID = "level1"
	Level2 ID = "level2"
	Level3 ID = "level3"
	Level4 ID = "level4"
	Ending ID = "ending"
)

var (
	ErrUnknownScene  = errors.New("unknown scene")
	ErrInvalidBranch = errors.New("missing or invalid branch flag")
)

// ParseID validates a scene name from the command line.
func ParseID(s string) (ID, error) {
	switch id := ID(s); id {
	case Boot, Level1, Level2, Level3, Level4, Ending:
		return id, nil
	}
	return "", fmt.Errorf("scene %q: %w", s, ErrUnknownScene)
}

// Request asks the Manager to replace the current scene. The zero value
// asks for nothing.
type Request struct {
	Next ID
}

func (r Request) Empty() bool { return r.Next == "" }

type Scene interface {
	ID() ID
	HandleInput(ev input.Event)
	// Update advances one frame and returns a non-empty Request on the frame
	// the scene's exit fade completes.
	Update(dt float64) Request
	// Draw must not change scene state.
	Draw(screen *ebiten.Image)
}
