package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/unifly-app/unifly/domain/catalog"
	"github.com/unifly-app/unifly/domain/document"
	"github.com/unifly-app/unifly/domain/search"
)

// Catalog serves CRUD over every entity collection and keeps searchable
// entities mirrored into the vector index via the Synchronizer.
type Catalog struct {
	entities     catalog.Catalog
	store        document.Store
	synchronizer *Synchronizer
	searchLimit  uint64
	logger       *slog.Logger
}

// NewCatalog creates a Catalog service.
func NewCatalog(entities catalog.Catalog, store document.Store, synchronizer *Synchronizer, searchLimit int, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	if searchLimit <= 0 {
		searchLimit = 10
	}
	return &Catalog{
		entities:     entities,
		store:        store,
		synchronizer: synchronizer,
		searchLimit:  uint64(searchLimit),
		logger:       logger,
	}
}

// Entities returns the served entity definitions.
func (c *Catalog) Entities() []catalog.Entity {
	return c.entities.Entities()
}

func (c *Catalog) entity(name string) (catalog.Entity, error) {
	entity, ok := c.entities.Get(name)
	if !ok {
		return catalog.Entity{}, fmt.Errorf("%w: %s", ErrUnknownEntity, name)
	}
	return entity, nil
}

// Filter returns entity records matching the filter, paginated.
func (c *Catalog) Filter(ctx context.Context, entityName string, filter document.Filter, page document.Page) ([]document.Record, error) {
	entity, err := c.entity(entityName)
	if err != nil {
		return nil, err
	}
	return c.store.Find(ctx, entity.Collection(), filter, page)
}

// Get returns the record with the given primary id, or nil.
func (c *Catalog) Get(ctx context.Context, entityName string, id int64) (document.Record, error) {
	entity, err := c.entity(entityName)
	if err != nil {
		return nil, err
	}
	return c.store.FindOne(ctx, entity.Collection(), entity.IDFilter(id))
}

// Count returns the number of records matching the filter.
func (c *Catalog) Count(ctx context.Context, entityName string, filter document.Filter) (int64, error) {
	entity, err := c.entity(entityName)
	if err != nil {
		return 0, err
	}
	return c.store.Count(ctx, entity.Collection(), filter)
}

// Create inserts a record and, for searchable entities, mirrors it into the
// vector index. The document write is not rolled back when indexing fails;
// the error still propagates to the caller.
func (c *Catalog) Create(ctx context.Context, entityName string, record document.Record) (document.InsertResult, error) {
	entity, err := c.entity(entityName)
	if err != nil {
		return document.InsertResult{}, err
	}

	result, err := c.store.Insert(ctx, entity.Collection(), record)
	if err != nil {
		return document.InsertResult{}, err
	}

	if entity.Searchable() {
		if _, err := c.synchronizer.Insert(ctx, entity.Index(), entity.Text(record), entity.Metadata(record)); err != nil {
			return result, err
		}
	}

	return result, nil
}

// Update sets fields on every record matching the filter and, when records
// actually changed, re-indexes each matched record keyed on its primary id.
func (c *Catalog) Update(ctx context.Context, entityName string, filter document.Filter, set document.Record) (document.UpdateResult, error) {
	entity, err := c.entity(entityName)
	if err != nil {
		return document.UpdateResult{}, err
	}

	result, err := c.store.Update(ctx, entity.Collection(), filter, set)
	if err != nil {
		return document.UpdateResult{}, err
	}

	if entity.Searchable() && result.ModifiedCount > 0 {
		records, err := c.store.Find(ctx, entity.Collection(), filter, document.Page{})
		if err != nil {
			return result, err
		}
		for _, record := range records {
			id, ok := record[entity.IDField()]
			if !ok {
				c.logger.Warn("skipping re-index of record without id field", "entity", entityName, "field", entity.IDField())
				continue
			}
			if _, err := c.synchronizer.Update(ctx, entity.Index(), entity.IDFilter(id), entity.Text(record), entity.Metadata(record)); err != nil {
				return result, err
			}
		}
	}

	return result, nil
}

// Delete removes every record matching the filter and, when records were
// actually deleted, removes their index entries using the same filter.
func (c *Catalog) Delete(ctx context.Context, entityName string, filter document.Filter) (document.DeleteResult, error) {
	entity, err := c.entity(entityName)
	if err != nil {
		return document.DeleteResult{}, err
	}

	result, err := c.store.Delete(ctx, entity.Collection(), filter)
	if err != nil {
		return document.DeleteResult{}, err
	}

	if entity.Searchable() && result.DeletedCount > 0 {
		if _, err := c.synchronizer.Delete(ctx, entity.Index(), filter); err != nil {
			return result, err
		}
	}

	return result, nil
}

// Search runs a similarity query against a searchable entity's index.
func (c *Catalog) Search(ctx context.Context, entityName string, query string, limit uint64) ([]search.Hit, error) {
	entity, err := c.entity(entityName)
	if err != nil {
		return nil, err
	}
	if !entity.Searchable() {
		return nil, fmt.Errorf("%w: %s", ErrNotSearchable, entityName)
	}

	if limit == 0 {
		limit = c.searchLimit
	}

	return c.synchronizer.index.Query(ctx, entity.Index(), query, limit)
}
