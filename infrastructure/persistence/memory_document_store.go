package persistence

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/unifly-app/unifly/domain/document"
)

// MemoryDocumentStore is an in-memory document.Store used for local
// development and tests. Records are kept per collection in insertion order.
type MemoryDocumentStore struct {
	mu          sync.RWMutex
	collections map[string][]document.Record
}

// NewMemoryDocumentStore creates an empty MemoryDocumentStore.
func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{
		collections: make(map[string][]document.Record),
	}
}

// Insert adds one record, assigning a fresh identity when none is present.
func (s *MemoryDocumentStore) Insert(_ context.Context, collection string, record document.Record) (document.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := record.Clone()
	id, ok := stored[document.IdentityField].(string)
	if !ok || id == "" {
		id = uuid.NewString()
		stored[document.IdentityField] = id
	}
	s.collections[collection] = append(s.collections[collection], stored)

	return document.InsertResult{ID: id, Acknowledged: true}, nil
}

// FindOne returns the first matching record, or nil when nothing matches.
func (s *MemoryDocumentStore) FindOne(_ context.Context, collection string, filter document.Filter) (document.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.collections[collection] {
		if filter.Matches(r) {
			return r.Without(document.IdentityField), nil
		}
	}
	return nil, nil
}

// Find returns matching records after applying skip and limit.
func (s *MemoryDocumentStore) Find(_ context.Context, collection string, filter document.Filter, page document.Page) ([]document.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []document.Record{}
	var seen int64
	for _, r := range s.collections[collection] {
		if !filter.Matches(r) {
			continue
		}
		seen++
		if seen <= page.Skip {
			continue
		}
		results = append(results, r.Without(document.IdentityField))
		if page.Limit > 0 && int64(len(results)) >= page.Limit {
			break
		}
	}
	return results, nil
}

// Update sets the given fields on every matching record.
func (s *MemoryDocumentStore) Update(_ context.Context, collection string, filter document.Filter, set document.Record) (document.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := document.UpdateResult{Acknowledged: true}
	for _, r := range s.collections[collection] {
		if !filter.Matches(r) {
			continue
		}
		result.MatchedCount++
		modified := false
		for k, v := range set {
			if k == document.IdentityField {
				continue
			}
			if existing, ok := r[k]; !ok || fmt.Sprintf("%v", existing) != fmt.Sprintf("%v", v) {
				modified = true
			}
			r[k] = v
		}
		if modified {
			result.ModifiedCount++
		}
	}
	return result, nil
}

// Delete removes every matching record.
func (s *MemoryDocumentStore) Delete(_ context.Context, collection string, filter document.Filter) (document.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.collections[collection][:0]
	result := document.DeleteResult{Acknowledged: true}
	for _, r := range s.collections[collection] {
		if filter.Matches(r) {
			result.DeletedCount++
			continue
		}
		kept = append(kept, r)
	}
	s.collections[collection] = kept
	return result, nil
}

// Count returns the number of matching records.
func (s *MemoryDocumentStore) Count(_ context.Context, collection string, filter document.Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, r := range s.collections[collection] {
		if filter.Matches(r) {
			count++
		}
	}
	return count, nil
}
