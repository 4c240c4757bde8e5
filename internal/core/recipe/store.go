package recipe

import (
	"sync"

	"github.com/Caro-cyber/sistema-iareceita/internal/pkg/common"
)

// Store holds the most recently generated batch of recipes, keyed by id.
//
// There is one store per process, not per user. Recipe ids restart from zero
// on every generation, so the store is cleared before a new batch is exposed;
// otherwise a stale id from a previous batch could resolve to the wrong
// recipe. Concurrent generation requests race and the last writer's batch
// wins for all readers — accepted single-store semantics.
type Store struct {
	mu      sync.RWMutex
	recipes map[string]Recipe
}

// NewStore creates an empty recipe store.
func NewStore() *Store {
	return &Store{
		recipes: make(map[string]Recipe),
	}
}

// Clear discards every held recipe.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes = make(map[string]Recipe)
}

// ReplaceAll atomically swaps the held batch for the given recipes.
func (s *Store) ReplaceAll(recipes []Recipe) {
	batch := make(map[string]Recipe, len(recipes))
	for _, r := range recipes {
		batch[r.ID] = r
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes = batch
}

// Get returns the recipe with the given id, or a not-found error when the id
// is unknown or belongs to an already replaced batch.
func (s *Store) Get(id string) (Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		return Recipe{}, common.NewNotFoundError("Receita não encontrada ou sessão expirada.")
	}
	return r, nil
}

// Len returns the number of recipes in the current batch.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}
