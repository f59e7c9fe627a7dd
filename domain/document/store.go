package document

import "context"

// Page holds pagination for Find calls. A zero Limit means no limit.
type Page struct {
	Skip  int64
	Limit int64
}

// InsertResult reports the outcome of an insert.
type InsertResult struct {
	ID           string
	Acknowledged bool
}

// UpdateResult reports the outcome of a bulk update.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
	Acknowledged  bool
}

// DeleteResult reports the outcome of a bulk delete.
type DeleteResult struct {
	DeletedCount int64
	Acknowledged bool
}

// Store provides CRUD over named document collections. Implementations
// strip the store's internal identity field from returned records and
// assign it on insert.
//
// "Not found" is not an error: FindOne returns a nil Record, Find returns
// an empty slice, Update/Delete report zero counts.
type Store interface {
	// Insert adds one record to the collection and returns its assigned
	// store identity.
	Insert(ctx context.Context, collection string, record Record) (InsertResult, error)

	// FindOne returns the first record matching the filter, or nil.
	FindOne(ctx context.Context, collection string, filter Filter) (Record, error)

	// Find returns all records matching the filter, paginated.
	Find(ctx context.Context, collection string, filter Filter, page Page) ([]Record, error)

	// Update sets the given fields on every record matching the filter.
	Update(ctx context.Context, collection string, filter Filter, set Record) (UpdateResult, error)

	// Delete removes every record matching the filter.
	Delete(ctx context.Context, collection string, filter Filter) (DeleteResult, error)

	// Count returns the number of records matching the filter.
	Count(ctx context.Context, collection string, filter Filter) (int64, error)
}
