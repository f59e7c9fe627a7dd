// Package qdrant implements the vector index on a Qdrant server.
package qdrant

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/unifly-app/unifly/domain/document"
	"github.com/unifly-app/unifly/domain/search"
)

// textPayloadField is the payload key holding the chunk text.
const textPayloadField = "text"

// Config holds Qdrant connection settings.
type Config struct {
	Host   string
	Port   int
	APIKey string
	UseTLS bool
}

// Index implements search.Index on a Qdrant server. Collections are created
// on first use with cosine distance and the embedder's vector size.
type Index struct {
	client   *qdrant.Client
	embedder search.Embedder
	logger   *slog.Logger

	mu      sync.Mutex
	ensured map[string]bool
}

// NewIndex connects to Qdrant and returns an Index.
func NewIndex(cfg Config, embedder search.Embedder, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("connect qdrant: %w", err)
	}

	return &Index{
		client:   client,
		embedder: embedder,
		logger:   logger,
		ensured:  make(map[string]bool),
	}, nil
}

// ensureCollection creates the collection if it does not exist yet.
func (i *Index) ensureCollection(ctx context.Context, collection string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.ensured[collection] {
		return nil
	}

	exists, err := i.client.CollectionExists(ctx, collection)
	if err != nil {
		return fmt.Errorf("check collection %s: %w", collection, err)
	}

	if !exists {
		err := i.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: collection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     uint64(i.embedder.Dimensions()),
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("create collection %s: %w", collection, err)
		}
		i.logger.Info("created qdrant collection", "collection", collection, "size", i.embedder.Dimensions())
	}

	i.ensured[collection] = true
	return nil
}

// Add embeds each text and upserts one point per chunk, all carrying the
// same metadata payload. Returns the generated point IDs in chunk order.
func (i *Index) Add(ctx context.Context, collection string, texts []string, metadata document.Metadata) ([]string, error) {
	if len(texts) == 0 {
		return []string{}, nil
	}
	if err := i.ensureCollection(ctx, collection); err != nil {
		return nil, err
	}

	vectors, err := i.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(texts))
	}

	ids := make([]string, len(texts))
	points := make([]*qdrant.PointStruct, len(texts))
	for idx, text := range texts {
		ids[idx] = uuid.NewString()

		payload := map[string]any(metadata.Clone())
		payload[textPayloadField] = text

		points[idx] = &qdrant.PointStruct{
			Id:      qdrant.NewID(ids[idx]),
			Vectors: qdrant.NewVectors(toFloat32(vectors[idx])...),
			Payload: qdrant.NewValueMap(payload),
		}
	}

	_, err = i.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Wait:           qdrant.PtrOf(true),
		Points:         points,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert points into %s: %w", collection, err)
	}

	return ids, nil
}

// Delete removes the points with the given IDs. Unknown IDs are ignored by
// the server.
func (i *Index) Delete(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := i.ensureCollection(ctx, collection); err != nil {
		return err
	}

	pointIDs := make([]*qdrant.PointId, len(ids))
	for idx, id := range ids {
		pointIDs[idx] = qdrant.NewID(id)
	}

	_, err := i.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collection,
		Wait:           qdrant.PtrOf(true),
		Points:         qdrant.NewPointsSelector(pointIDs...),
	})
	if err != nil {
		return fmt.Errorf("delete points from %s: %w", collection, err)
	}
	return nil
}

// Query embeds the text and returns the limit nearest points.
func (i *Index) Query(ctx context.Context, collection string, text string, limit uint64) ([]search.Hit, error) {
	if err := i.ensureCollection(ctx, collection); err != nil {
		return nil, err
	}

	vectors, err := i.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for query", len(vectors))
	}

	points, err := i.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(toFloat32(vectors[0])...),
		Limit:          qdrant.PtrOf(limit),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}

	hits := make([]search.Hit, len(points))
	for idx, point := range points {
		text, payload := splitPayload(point.Payload)
		hits[idx] = search.NewHit(pointIDString(point.Id), float64(point.Score), text, payload)
	}
	return hits, nil
}

// Close releases the underlying gRPC connection.
func (i *Index) Close() error {
	return i.client.Close()
}

func toFloat32(vector []float64) []float32 {
	result := make([]float32, len(vector))
	for i, v := range vector {
		result[i] = float32(v)
	}
	return result
}

func pointIDString(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	if u := id.GetUuid(); u != "" {
		return u
	}
	return fmt.Sprintf("%d", id.GetNum())
}

// splitPayload separates the chunk text from the metadata payload.
func splitPayload(payload map[string]*qdrant.Value) (string, document.Metadata) {
	metadata := document.Metadata{}
	var text string
	for k, v := range payload {
		if k == textPayloadField {
			text = v.GetStringValue()
			continue
		}
		metadata[k] = valueToAny(v)
	}
	return text, metadata
}

func valueToAny(v *qdrant.Value) any {
	switch kind := v.GetKind().(type) {
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_IntegerValue:
		return kind.IntegerValue
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrant.Value_BoolValue:
		return kind.BoolValue
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_ListValue:
		items := kind.ListValue.GetValues()
		result := make([]any, len(items))
		for i, item := range items {
			result[i] = valueToAny(item)
		}
		return result
	case *qdrant.Value_StructValue:
		fields := kind.StructValue.GetFields()
		result := make(map[string]any, len(fields))
		for k, field := range fields {
			result[k] = valueToAny(field)
		}
		return result
	default:
		return nil
	}
}

var _ search.Index = (*Index)(nil)
