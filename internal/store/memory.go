// internal/store/memory.go
//
// In-memory registry of live modules.
//
// Characteristics:
//   - Stores *game.Module values keyed by ID in a map.
//   - Concurrency-safe via RWMutex; each module serializes its own input.
//   - State is lost when the process restarts, which matches the module:
//     nothing of a session survives it.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/notthefan/internal/game"
)

var ErrNotFound = errors.New("store: module not found")

// Store defines the registry interface for live modules.
type Store interface {
	// Save adds or replaces a module.
	Save(ctx context.Context, m *game.Module) error

	// Get retrieves a module by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Module, error)

	// Delete drops a module. Missing IDs are not an error.
	Delete(ctx context.Context, id string) error
}

type memory struct {
	mu      sync.RWMutex
	modules map[string]*game.Module
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{modules: make(map[string]*game.Module)}
}

func (m *memory) Save(ctx context.Context, mod *game.Module) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modules[mod.ID] = mod
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Module, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if mod, ok := m.modules[id]; ok {
		return mod, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.modules, id)
	return nil
}
