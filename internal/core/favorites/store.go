package favorites

import (
	"context"
	"encoding/json"
	"sync"

	"ranna-banna/internal/core/recipe"
	"ranna-banna/internal/pkg/common"

	"go.uber.org/zap"
)

// Store the bookmarked recipes, in insertion order, keyed by recipe id.
// Every change is written through to the persistence port.
type Store struct {
	mu      sync.RWMutex
	persist Persistence
	items   []recipe.Recipe
}

// NewStore creates an empty store backed by p
func NewStore(p Persistence) *Store {
	return &Store{persist: p, items: []recipe.Recipe{}}
}

// Load replaces the in-memory set with the persisted one. An unparsable stored value is
// discarded and the store starts empty.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.persist.Load(ctx)
	if err != nil {
		return err
	}

	items := []recipe.Recipe{}
	if len(data) > 0 {
		var stored []recipe.Recipe
		if err := json.Unmarshal(data, &stored); err != nil {
			common.LogWarn("Discarding unparsable stored favorites", zap.Error(err))
		} else {
			items = dedupe(stored)
		}
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	common.LogInfo("Favorites loaded", zap.Int("count", len(items)))
	return nil
}

// Toggle removes r when it is a favorite and appends it otherwise. It reports whether r is a favorite afterwards.
func (s *Store) Toggle(ctx context.Context, r recipe.Recipe) (bool, []recipe.Recipe, error) {
	if r.ID == "" {
		return false, nil, common.NewValidationError("recipe id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.items
	added := false
	if idx := s.indexOf(r.ID); idx >= 0 {
		s.items = without(prev, idx)
	} else {
		s.items = append(append(make([]recipe.Recipe, 0, len(prev)+1), prev...), r)
		added = true
	}

	if err := s.save(ctx); err != nil {
		s.items = prev
		return false, nil, err
	}
	return added, s.snapshot(), nil
}

// Remove drops the recipe with id. Removing an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	prev := s.items
	s.items = without(prev, idx)
	if err := s.save(ctx); err != nil {
		s.items = prev
		return false, err
	}
	return true, nil
}

// Contains reports whether id is a favorite
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// Get returns the favorite with id
func (s *Store) Get(id string) (recipe.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.items[idx], true
	}
	return recipe.Recipe{}, false
}

// List returns the favorites in insertion order
func (s *Store) List() []recipe.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Len the number of favorites
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) save(ctx context.Context) error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return common.ErrFavoritesPersistFailed.Wrap(err)
	}
	if err := s.persist.Save(ctx, data); err != nil {
		common.LogError("Failed to persist favorites", zap.Error(err))
		return common.ErrFavoritesPersistFailed.Wrap(err)
	}
	return nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []recipe.Recipe {
	out := make([]recipe.Recipe, len(s.items))
	copy(out, s.items)
	return out
}

func without(items []recipe.Recipe, idx int) []recipe.Recipe {
	out := make([]recipe.Recipe, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...)
}

// dedupe keeps the first entry per id and drops entries without an id
func dedupe(items []recipe.Recipe) []recipe.Recipe {
	seen := make(map[string]bool, len(items))
	out := make([]recipe.Recipe, 0, len(items))
	for _, r := range items {
		if r.ID == "" || seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out
}
