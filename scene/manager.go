package scene

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/protocol/input"
)

// Builder constructs scenes by ID.
type Builder interface {
	New(id ID) (Scene, error)
}

// Manager holds exactly one active scene.
type Manager struct {
	current Scene
	builder Builder
	logger  *log.Logger
}

func NewManager(b Builder, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{builder: b, logger: logger}
}

// Start builds the first scene.
func (m *Manager) Start(id ID) error {
	s, err := m.builder.New(id)
	if err != nil {
		return fmt.Errorf("start %s: %w", id, err)
	}
	m.ChangeState(s)
	return nil
}

// ChangeState replaces the active scene.
func (m *Manager) ChangeState(s Scene) {
	from := ID("none")
	if m.current != nil {
		from = m.current.ID()
	}
	m.current = s
	m.logger.Info("scene changed", "from", from, "to", s.ID())
}

func (m *Manager) Current() Scene { return m.current }

func (m *Manager) HandleInput(ev input.Event) {
	if m.current != nil {
		m.current.HandleInput(ev)
	}
}

// Update advances the active scene and performs any scene change it asks
// for. A scene that cannot be built is fatal to the caller.
func (m *Manager) Update(dt float64) error {
	if m.current == nil {
		return nil
	}
	req := m.current.Update(dt)
	if req.Empty() {
		return nil
	}
	next, err := m.builder.New(req.Next)
	if err != nil {
		return fmt.Errorf("change %s -> %s: %w", m.current.ID(), req.Next, err)
	}
	m.ChangeState(next)
	return nil
}

func (m *Manager) Draw(screen *ebiten.Image) {
	if m.current != nil {
		m.current.Draw(screen)
	}
}
