package persistence

import (
	"context"
	"sync"

	"github.com/unifly-app/unifly/domain/document"
	"github.com/unifly-app/unifly/domain/search"
)

// MemoryJoinStore is an in-memory search.JoinStore used for local
// development and tests.
type MemoryJoinStore struct {
	mu      sync.RWMutex
	entries map[string][]search.JoinEntry
}

// NewMemoryJoinStore creates an empty MemoryJoinStore.
func NewMemoryJoinStore() *MemoryJoinStore {
	return &MemoryJoinStore{
		entries: make(map[string][]search.JoinEntry),
	}
}

// Insert adds one entry to the collection.
func (s *MemoryJoinStore) Insert(_ context.Context, collection string, entry search.JoinEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[collection] = append(s.entries[collection], entry)
	return nil
}

// Find returns all entries whose metadata matches the filter.
func (s *MemoryJoinStore) Find(_ context.Context, collection string, filter document.Filter) ([]search.JoinEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []search.JoinEntry{}
	for _, e := range s.entries[collection] {
		if filter.Matches(document.Record(e.Metadata())) {
			results = append(results, e)
		}
	}
	return results, nil
}

// Delete removes all entries whose metadata matches the filter.
func (s *MemoryJoinStore) Delete(_ context.Context, collection string, filter document.Filter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[collection][:0]
	var removed int64
	for _, e := range s.entries[collection] {
		if filter.Matches(document.Record(e.Metadata())) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.entries[collection] = kept
	return removed, nil
}
