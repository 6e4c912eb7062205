// Package registry maps game IDs to factories. Games register themselves
// from init(), so hosts can list and create them by name.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Game is what a host drives: reset, fixed-rate steps and rendering.
// Implementations hold pure game logic and never touch the terminal.
type Game interface {
	// ID is the stable identifier used on the command line and in storage.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh session. Called once before the first Step and
	// again on every restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick with the actions collected
	// since the previous tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state. The screen is cleared beforehand.
	Render(dst *core.Screen)

	// State returns the current host-visible state.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a factory under id. It panics on an empty or duplicate id.
func Register(id string, f Factory) {
	if strings.TrimSpace(id) == "" {
		panic("registry: empty game id")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns every registered game sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(out, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Create returns a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
