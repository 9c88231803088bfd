// internal/store/memory.go
//
// In-memory store of interactive game sessions.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex; Update runs its callback under the write
//     lock so a game is never mutated by two requests at once.
//   - State is lost when the process restarts.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
)

// ErrNotFound is returned for unknown IDs.
var ErrNotFound = errors.New("store: not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a game state.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID. Callers must not mutate it; use Update.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Update runs fn on the stored game while holding it exclusively.
	Update(ctx context.Context, id string, fn func(*game.Game) error) error
}

type memory struct {
	mu    sync.RWMutex
	games map[string]*game.Game // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Update(ctx context.Context, id string, fn func(*game.Game) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return ErrNotFound
	}
	return fn(g)
}
