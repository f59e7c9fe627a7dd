package search

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/unifly-app/unifly/domain/document"
	"github.com/unifly-app/unifly/domain/search"
)

type memoryPoint struct {
	id      string
	text    string
	payload document.Metadata
}

// MemoryIndex is an in-memory search.Index used for local development and
// tests. Queries are ranked by lexical term overlap, not embeddings.
type MemoryIndex struct {
	mu          sync.RWMutex
	collections map[string][]memoryPoint
}

// NewMemoryIndex creates an empty MemoryIndex.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		collections: make(map[string][]memoryPoint),
	}
}

// Add stores each text with the shared metadata payload.
func (m *MemoryIndex) Add(_ context.Context, collection string, texts []string, metadata document.Metadata) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, len(texts))
	for i, text := range texts {
		ids[i] = uuid.NewString()
		m.collections[collection] = append(m.collections[collection], memoryPoint{
			id:      ids[i],
			text:    text,
			payload: metadata.Clone(),
		})
	}
	return ids, nil
}

// Delete removes the entries with the given IDs. Unknown IDs are ignored.
func (m *MemoryIndex) Delete(_ context.Context, collection string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := m.collections[collection][:0]
	for _, p := range m.collections[collection] {
		if _, ok := drop[p.id]; ok {
			continue
		}
		kept = append(kept, p)
	}
	m.collections[collection] = kept
	return nil
}

// Query returns the limit entries sharing the most terms with the text.
func (m *MemoryIndex) Query(_ context.Context, collection string, text string, limit uint64) ([]search.Hit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	queryTerms := terms(text)
	type scored struct {
		point memoryPoint
		score float64
	}

	var results []scored
	for _, p := range m.collections[collection] {
		score := overlap(queryTerms, terms(p.text))
		if score > 0 {
			results = append(results, scored{point: p, score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if limit > 0 && uint64(len(results)) > limit {
		results = results[:limit]
	}

	hits := make([]search.Hit, len(results))
	for i, r := range results {
		hits[i] = search.NewHit(r.point.id, r.score, r.point.text, r.point.payload)
	}
	return hits, nil
}

// Size returns the number of stored entries in a collection.
func (m *MemoryIndex) Size(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.collections[collection])
}

func terms(text string) map[string]struct{} {
	result := make(map[string]struct{})
	for _, t := range strings.Fields(strings.ToLower(text)) {
		result[strings.Trim(t, ".,:;!?")] = struct{}{}
	}
	return result
}

func overlap(query, candidate map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}
	var shared int
	for t := range query {
		if _, ok := candidate[t]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(query))
}

var _ search.Index = (*MemoryIndex)(nil)
