// internal/registry/registry.go
//
// Session registry: maps opaque game tokens to live sessions. This is the
// only shared index across games; its lock covers create/lookup only, never
// a session's lifetime, so games never contend with each other.

package registry

import (
	"sync"

	"github.com/robalobadob/phony-server/internal/game"
	"github.com/robalobadob/phony-server/internal/token"
)

// Registry owns every in-memory game session, keyed by game token.
type Registry struct {
	mu     sync.RWMutex
	games  map[string]*game.Game
	supply game.Supply
}

// New constructs an empty registry whose sessions draw from supply.
func New(supply game.Supply) *Registry {
	return &Registry{
		games:  make(map[string]*game.Game),
		supply: supply,
	}
}

// Create makes a new session under a fresh unique token and returns it.
func (r *Registry) Create() *game.Game {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		tok := token.New()
		if _, exists := r.games[tok]; exists {
			continue
		}
		g := game.New(tok, r.supply)
		r.games[tok] = g
		return g
	}
}

// Get looks up a session by game token.
func (r *Registry) Get(tok string) (*game.Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.games[tok]
	return g, ok
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}
