package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps entries in process memory. When full, storing a new
// entry evicts the oldest one.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	max     int
}

// NewMemoryStore creates a store holding at most max entries.
// A max of zero or less means unbounded.
func NewMemoryStore(max int) *MemoryStore {
	return &MemoryStore{entries: make(map[string]*Entry), max: max}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if e.IsExpired() {
		_ = s.Delete(ctx, id)
		return nil, nil
	}
	return e, nil
}

func (s *MemoryStore) Put(ctx context.Context, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[e.ID]; !exists && s.max > 0 {
		for len(s.entries) >= s.max {
			s.evictOldest()
		}
	}
	s.entries[e.ID] = e
	return nil
}

func (s *MemoryStore) evictOldest() {
	var oldest *Entry
	for _, e := range s.entries {
		if oldest == nil || e.CreatedAt.Before(oldest.CreatedAt) {
			oldest = e
		}
	}
	if oldest != nil {
		delete(s.entries, oldest.ID)
	}
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Meta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Meta, 0, len(s.entries))
	for _, e := range s.entries {
		if !e.IsExpired() {
			out = append(out, e.Meta())
		}
	}
	sortMeta(out)
	return out, nil
}

func (s *MemoryStore) Cleanup(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.entries {
		if e.IsExpired() {
			delete(s.entries, id)
			n++
		}
	}
	return n, nil
}

// sortMeta orders newest first, then by ID.
func sortMeta(ms []Meta) {
	slices.SortFunc(ms, func(a, b Meta) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

var _ Store = (*MemoryStore)(nil)
