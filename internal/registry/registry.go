// Package registry maps game ids to constructors. Games register in init(),
// so the CLI and the SSH server can build one without importing it directly.
package registry

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/highway-runner/internal/core"
)

// Game is what the platform drives. Implementations hold pure logic;
// input mapping, timing and terminal output live in the platform.
type Game interface {
	// ID is the stable identifier stored in the run journal.
	ID() string

	// Title is the display name.
	Title() string

	// Reset discards the current run and starts a new one sized and
	// seeded by cfg.
	Reset(cfg core.RuntimeConfig)

	// Step consumes the input gathered since the previous refresh and
	// the time it covers. It advances at most one tick.
	Step(in core.InputFrame, dt core.Delta) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// Factory builds a game bound to its collaborators.
type Factory func(svc core.Services) Game

var (
	mu      sync.RWMutex
	entries = map[string]Factory{}
)

// Register adds a factory under id. Registering an id twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = f
}

// Create builds the game registered under id. Missing services fall back
// to their defaults.
func Create(id string, svc core.Services) (Game, error) {
	mu.RLock()
	f, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(svc.WithDefaults()), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
