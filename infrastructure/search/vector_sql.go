package search

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/unifly-app/unifly/domain/document"
	"github.com/unifly-app/unifly/domain/search"
	"github.com/unifly-app/unifly/internal/database"
)

// Float64Slice is a custom type for JSON serialization of []float64.
type Float64Slice []float64

// Scan implements sql.Scanner for reading JSON.
func (f *Float64Slice) Scan(value any) error {
	if value == nil {
		*f = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Float64Slice", value)
	}

	return json.Unmarshal(data, f)
}

// Value implements driver.Valuer for writing JSON.
func (f Float64Slice) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	return json.Marshal(f)
}

// PayloadJSON is a custom type for JSON serialization of point payloads.
type PayloadJSON map[string]any

// Scan implements sql.Scanner for reading JSON.
func (p *PayloadJSON) Scan(value any) error {
	if value == nil {
		*p = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PayloadJSON", value)
	}

	return json.Unmarshal(data, p)
}

// Value implements driver.Valuer for writing JSON.
func (p PayloadJSON) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

// VectorEntity represents one stored chunk in a SQL vector table.
// Table routing is done via .Table(name) at the call site because GORM
// caches schemas by type and dynamic TableName() does not work across
// multiple table names for the same struct type.
type VectorEntity struct {
	ID        int64        `gorm:"column:id;primaryKey;autoIncrement"`
	PointID   string       `gorm:"column:point_id;uniqueIndex"`
	Text      string       `gorm:"column:text"`
	Embedding Float64Slice `gorm:"column:embedding;type:json"`
	Payload   PayloadJSON  `gorm:"column:payload;type:json"`
}

// ErrSQLVectorInitializationFailed indicates SQL vector table creation failed.
var ErrSQLVectorInitializationFailed = errors.New("failed to initialize SQL vector index")

// SQLIndex implements search.Index on a relational database. Embeddings are
// stored as JSON and similarity search runs in-memory, which is fine for
// local development and modest collection sizes.
type SQLIndex struct {
	db       database.Database
	embedder search.Embedder
	logger   *slog.Logger

	mu          sync.Mutex
	initialized map[string]bool
}

// NewSQLIndex creates a SQLIndex.
func NewSQLIndex(db database.Database, embedder search.Embedder, logger *slog.Logger) *SQLIndex {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLIndex{
		db:          db,
		embedder:    embedder,
		logger:      logger,
		initialized: make(map[string]bool),
	}
}

func tableName(collection string) string {
	return fmt.Sprintf("unifly_%s_vectors", collection)
}

func (s *SQLIndex) initialize(ctx context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized[collection] {
		return nil
	}

	// Raw SQL because GORM's AutoMigrate caches schemas by type, which
	// conflicts with dynamic table names.
	createTableSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    point_id VARCHAR(255) NOT NULL UNIQUE,
    text TEXT NOT NULL,
    embedding JSON NOT NULL,
    payload JSON
)`, tableName(collection))

	if err := s.db.Session(ctx).Exec(createTableSQL).Error; err != nil {
		return errors.Join(ErrSQLVectorInitializationFailed, err)
	}

	s.initialized[collection] = true
	return nil
}

// Add embeds each text and stores it with the shared metadata payload.
func (s *SQLIndex) Add(ctx context.Context, collection string, texts []string, metadata document.Metadata) ([]string, error) {
	if len(texts) == 0 {
		return []string{}, nil
	}
	if err := s.initialize(ctx, collection); err != nil {
		return nil, err
	}

	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(texts))
	}

	ids := make([]string, len(texts))
	entities := make([]VectorEntity, len(texts))
	for i, text := range texts {
		ids[i] = uuid.NewString()
		embedding := make(Float64Slice, len(vectors[i]))
		copy(embedding, vectors[i])
		entities[i] = VectorEntity{
			PointID:   ids[i],
			Text:      text,
			Embedding: embedding,
			Payload:   PayloadJSON(metadata.Clone()),
		}
	}

	if err := s.db.Session(ctx).Table(tableName(collection)).Create(&entities).Error; err != nil {
		return nil, fmt.Errorf("store chunks: %w", err)
	}

	return ids, nil
}

// Delete removes the entries with the given point IDs.
func (s *SQLIndex) Delete(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.initialize(ctx, collection); err != nil {
		return err
	}

	query := database.NewQuery().In("point_id", ids)
	err := query.Apply(s.db.Session(ctx).Table(tableName(collection))).
		Delete(&VectorEntity{}).Error
	if err != nil {
		return fmt.Errorf("delete chunks: %w", err)
	}
	return nil
}

// Query embeds the text and returns the limit nearest entries by cosine
// similarity.
func (s *SQLIndex) Query(ctx context.Context, collection string, text string, limit uint64) ([]search.Hit, error) {
	if err := s.initialize(ctx, collection); err != nil {
		return nil, err
	}

	vectors, err := s.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for query", len(vectors))
	}

	var entities []VectorEntity
	load := database.NewQuery().OrderAsc("id")
	if err := load.Apply(s.db.Session(ctx).Table(tableName(collection))).Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("load vectors: %w", err)
	}

	byID := make(map[string]VectorEntity, len(entities))
	stored := make([]StoredVector, 0, len(entities))
	for _, e := range entities {
		if len(e.Embedding) == 0 {
			s.logger.Warn("skipping empty embedding", "point_id", e.PointID)
			continue
		}
		byID[e.PointID] = e
		stored = append(stored, NewStoredVector(e.PointID, e.Embedding))
	}

	matches := TopKSimilar(vectors[0], stored, int(limit))
	hits := make([]search.Hit, len(matches))
	for i, m := range matches {
		e := byID[m.PointID()]
		hits[i] = search.NewHit(m.PointID(), m.Similarity(), e.Text, document.Metadata(e.Payload))
	}
	return hits, nil
}

var _ search.Index = (*SQLIndex)(nil)
