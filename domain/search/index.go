package search

import (
	"context"

	"github.com/unifly-app/unifly/domain/document"
)

// Hit is a single result from a similarity query.
type Hit struct {
	id      string
	score   float64
	text    string
	payload document.Metadata
}

// NewHit creates a Hit.
func NewHit(id string, score float64, text string, payload document.Metadata) Hit {
	return Hit{id: id, score: score, text: text, payload: payload.Clone()}
}

// ID returns the vector entry identifier.
func (h Hit) ID() string { return h.id }

// Score returns the similarity score (higher is more similar).
func (h Hit) Score() float64 { return h.score }

// Text returns the stored chunk text.
func (h Hit) Text() string { return h.text }

// Payload returns the metadata stored alongside the vector.
func (h Hit) Payload() document.Metadata { return h.payload.Clone() }

// Index stores text chunks as vectors in named collections. Entry IDs are
// assigned by the index and returned from Add in chunk order.
type Index interface {
	// Add embeds each text and stores it with the shared metadata payload.
	// Returns one entry ID per text, in input order.
	Add(ctx context.Context, collection string, texts []string, metadata document.Metadata) ([]string, error)

	// Delete removes the entries with the given IDs. Unknown IDs are
	// ignored.
	Delete(ctx context.Context, collection string, ids []string) error

	// Query embeds the text and returns the limit nearest entries.
	Query(ctx context.Context, collection string, text string, limit uint64) ([]Hit, error)
}
