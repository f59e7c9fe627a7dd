package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/unifly-app/unifly/domain/document"
	"github.com/unifly-app/unifly/domain/search"
)

// JoinStore implements search.JoinStore on a dedicated MongoDB database.
// Collections are named after their vector-index collections; each entry
// carries the source record's metadata plus the chunk ID list.
type JoinStore struct {
	manager  *Manager
	database string
}

// NewJoinStore creates a JoinStore over the named database.
func NewJoinStore(manager *Manager, database string) *JoinStore {
	return &JoinStore{manager: manager, database: database}
}

// Insert adds one entry to the collection.
func (s *JoinStore) Insert(ctx context.Context, collection string, entry search.JoinEntry) error {
	db, err := s.manager.Database(ctx, s.database)
	if err != nil {
		return err
	}

	doc := bson.M(entry.Metadata())
	doc[search.ChunkIDsField] = entry.ChunkIDs()

	if _, err := db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert join entry into %s: %w", collection, err)
	}
	return nil
}

// Find returns all entries whose metadata matches the filter.
func (s *JoinStore) Find(ctx context.Context, collection string, filter document.Filter) ([]search.JoinEntry, error) {
	db, err := s.manager.Database(ctx, s.database)
	if err != nil {
		return nil, err
	}

	cursor, err := db.Collection(collection).Find(ctx, bson.M(filter), nil)
	if err != nil {
		return nil, fmt.Errorf("find join entries in %s: %w", collection, err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode join entries from %s: %w", collection, err)
	}

	entries := make([]search.JoinEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, toJoinEntry(doc))
	}
	return entries, nil
}

func toJoinEntry(doc bson.M) search.JoinEntry {
	metadata := document.Metadata{}
	var chunkIDs []string
	for k, v := range doc {
		switch k {
		case document.IdentityField:
		case search.ChunkIDsField:
			chunkIDs = toStringSlice(v)
		default:
			metadata[k] = v
		}
	}
	return search.NewJoinEntry(metadata, chunkIDs)
}

func toStringSlice(v any) []string {
	items, ok := v.(bson.A)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

// Delete removes all entries whose metadata matches the filter.
func (s *JoinStore) Delete(ctx context.Context, collection string, filter document.Filter) (int64, error) {
	db, err := s.manager.Database(ctx, s.database)
	if err != nil {
		return 0, err
	}

	result, err := db.Collection(collection).DeleteMany(ctx, bson.M(filter))
	if err != nil {
		return 0, fmt.Errorf("delete join entries in %s: %w", collection, err)
	}
	return result.DeletedCount, nil
}

var _ search.JoinStore = (*JoinStore)(nil)
