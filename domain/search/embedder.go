package search

import "context"

// Embedder produces vector representations for text blobs. Implementations
// are swappable by configuration (provider name, model, endpoint).
type Embedder interface {
	// Embed returns one embedding per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float64, error)

	// Dimensions returns the embedding vector size, used when creating
	// vector collections.
	Dimensions() int
}
