// Package registry maps mode IDs to game factories. Modes register
// themselves from init so the CLI, menus and servers can list and create
// them without importing each one.
package registry

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// Game is the interface every playable mode implements.
// Games contain pure logic with no Bubble Tea dependency; the platform
// handles input mapping, timing and rendering.
type Game interface {
	// ID returns a unique identifier used by the CLI and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// Resizer is implemented by games that relayout on viewport changes
// without a reset.
type Resizer interface {
	Resize(w, h int)
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

// Registry holds factories in registration order.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
	index   map[string]int
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds a factory. The title is taken from a probe instance.
// Panics on a duplicate ID.
func (r *Registry) Register(id string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	r.index[id] = len(r.entries)
	r.entries = append(r.entries, entry{
		info:    GameInfo{ID: id, Title: f().Title()},
		factory: f,
	})
}

// List returns the registered modes in registration order.
func (r *Registry) List() []GameInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]GameInfo, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.info
	}
	return out
}

// Create instantiates a mode by ID.
func (r *Registry) Create(id string) (Game, error) {
	r.mu.RLock()
	i, ok := r.index[id]
	var f Factory
	if ok {
		f = r.entries[i].factory
	}
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.index[id]
	return ok
}

var std = New()

// Register adds a factory to the process-wide registry.
func Register(id string, f Factory) { std.Register(id, f) }

// List returns the modes of the process-wide registry.
func List() []GameInfo { return std.List() }

// Create instantiates a mode from the process-wide registry.
func Create(id string) (Game, error) { return std.Create(id) }

// Exists reports whether id is in the process-wide registry.
func Exists(id string) bool { return std.Exists(id) }
