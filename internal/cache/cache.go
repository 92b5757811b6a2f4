package cache

import "sync"

// Store is a query cache keyed by (entity, params). Entries are whole fetched
// collections; writes invalidate every entry of the touched entity. Entry
// counts are small (one daycare's rosters), so there is no eviction policy.
type Store struct {
	mu      sync.RWMutex
	entries map[string]map[string]any
}

func New() *Store {
	return &Store{entries: make(map[string]map[string]any)}
}

func (s *Store) Get(entity, params string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byParams, ok := s.entries[entity]
	if !ok {
		return nil, false
	}
	value, ok := byParams[params]
	return value, ok
}

func (s *Store) Put(entity, params string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byParams, ok := s.entries[entity]
	if !ok {
		byParams = make(map[string]any)
		s.entries[entity] = byParams
	}
	byParams[params] = value
}

// Invalidate drops every cached query for the entity.
func (s *Store) Invalidate(entity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, entity)
}
