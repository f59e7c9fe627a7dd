package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/unifly-app/unifly/domain/document"
)

// identityProjection excludes the MongoDB object ID from read results so
// records round-trip cleanly through JSON.
var identityProjection = bson.M{document.IdentityField: 0}

// DocumentStore implements document.Store on a MongoDB database.
type DocumentStore struct {
	manager  *Manager
	database string
}

// NewDocumentStore creates a DocumentStore over the named database.
func NewDocumentStore(manager *Manager, database string) *DocumentStore {
	return &DocumentStore{manager: manager, database: database}
}

func (s *DocumentStore) collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := s.manager.Database(ctx, s.database)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Insert adds one record and returns the assigned object ID.
func (s *DocumentStore) Insert(ctx context.Context, collection string, record document.Record) (document.InsertResult, error) {
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return document.InsertResult{}, err
	}

	result, err := coll.InsertOne(ctx, bson.M(record))
	if err != nil {
		return document.InsertResult{}, fmt.Errorf("insert into %s: %w", collection, err)
	}

	return document.InsertResult{
		ID:           renderInsertedID(result.InsertedID),
		Acknowledged: true,
	}, nil
}

func renderInsertedID(id any) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprintf("%v", id)
}

// FindOne returns the first record matching the filter, or nil.
func (s *DocumentStore) FindOne(ctx context.Context, collection string, filter document.Filter) (document.Record, error) {
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return nil, err
	}

	var record document.Record
	err = coll.FindOne(ctx, bson.M(filter), options.FindOne().SetProjection(identityProjection)).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find one in %s: %w", collection, err)
	}
	return record, nil
}

// Find returns all records matching the filter, paginated.
func (s *DocumentStore) Find(ctx context.Context, collection string, filter document.Filter, page document.Page) ([]document.Record, error) {
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetProjection(identityProjection)
	if page.Skip > 0 {
		opts = opts.SetSkip(page.Skip)
	}
	if page.Limit > 0 {
		opts = opts.SetLimit(page.Limit)
	}

	cursor, err := coll.Find(ctx, bson.M(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", collection, err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	records := []document.Record{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode records from %s: %w", collection, err)
	}
	return records, nil
}

// Update sets the given fields on every record matching the filter.
func (s *DocumentStore) Update(ctx context.Context, collection string, filter document.Filter, set document.Record) (document.UpdateResult, error) {
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return document.UpdateResult{}, err
	}

	result, err := coll.UpdateMany(ctx, bson.M(filter), bson.M{"$set": bson.M(set)})
	if err != nil {
		return document.UpdateResult{}, fmt.Errorf("update in %s: %w", collection, err)
	}

	return document.UpdateResult{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
		Acknowledged:  true,
	}, nil
}

// Delete removes every record matching the filter.
func (s *DocumentStore) Delete(ctx context.Context, collection string, filter document.Filter) (document.DeleteResult, error) {
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return document.DeleteResult{}, err
	}

	result, err := coll.DeleteMany(ctx, bson.M(filter))
	if err != nil {
		return document.DeleteResult{}, fmt.Errorf("delete in %s: %w", collection, err)
	}

	return document.DeleteResult{
		DeletedCount: result.DeletedCount,
		Acknowledged: true,
	}, nil
}

// Count returns the number of records matching the filter.
func (s *DocumentStore) Count(ctx context.Context, collection string, filter document.Filter) (int64, error) {
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return 0, err
	}

	count, err := coll.CountDocuments(ctx, bson.M(filter))
	if err != nil {
		return 0, fmt.Errorf("count in %s: %w", collection, err)
	}
	return count, nil
}

var _ document.Store = (*DocumentStore)(nil)
