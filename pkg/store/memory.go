package store

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/matzehuels/units/pkg/registry"
)

// MemoryStore keeps definitions in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	defs map[string]registry.Definition
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{defs: make(map[string]registry.Definition)}
}

func (s *MemoryStore) List(ctx context.Context) ([]registry.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	defs := slices.Collect(maps.Values(s.defs))
	slices.SortFunc(defs, func(a, b registry.Definition) int { return cmp.Compare(a.Symbol, b.Symbol) })
	return defs, nil
}

func (s *MemoryStore) Get(ctx context.Context, symbol string) (registry.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.defs[symbol]
	if !ok {
		return registry.Definition{}, NotFound(symbol)
	}
	return def, nil
}

func (s *MemoryStore) Put(ctx context.Context, def registry.Definition) error {
	if err := ValidateKey(def); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defs[def.Symbol] = clone(def)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, symbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.defs[symbol]; !ok {
		return NotFound(symbol)
	}
	delete(s.defs, symbol)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// clone copies the map and slice fields so callers cannot mutate stored state.
func clone(def registry.Definition) registry.Definition {
	def.Dimension = maps.Clone(def.Dimension)
	def.Aliases = slices.Clone(def.Aliases)
	return def
}

var _ Store = (*MemoryStore)(nil)
