// Package service provides application layer services that orchestrate
// domain operations.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/unifly-app/unifly/domain/document"
	"github.com/unifly-app/unifly/domain/search"
	"github.com/unifly-app/unifly/infrastructure/chunking"
)

// Synchronizer mirrors document records into the vector index and keeps the
// join table in step. It writes to two stores without a transaction: a
// failure between the index write and the join write leaves orphan vector
// entries behind. Callers own retry policy; the synchronizer reports the
// first error unmodified.
type Synchronizer struct {
	index    search.Index
	joins    search.JoinStore
	splitter chunking.Splitter
	logger   *slog.Logger
}

// NewSynchronizer creates a Synchronizer.
func NewSynchronizer(index search.Index, joins search.JoinStore, splitter chunking.Splitter, logger *slog.Logger) *Synchronizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer{
		index:    index,
		joins:    joins,
		splitter: splitter,
		logger:   logger,
	}
}

// Insert chunks the text, adds every chunk to the index under the same
// metadata, and records the resulting chunk IDs in the join table. Returns
// the chunk IDs in order.
func (s *Synchronizer) Insert(ctx context.Context, collection string, text string, metadata document.Metadata) ([]string, error) {
	chunks := s.splitter.Split(text)

	ids, err := s.index.Add(ctx, collection, chunks, metadata)
	if err != nil {
		return nil, fmt.Errorf("add to index %s: %w", collection, err)
	}

	if err := s.joins.Insert(ctx, collection, search.NewJoinEntry(metadata, ids)); err != nil {
		return nil, fmt.Errorf("record join entry for %s: %w", collection, err)
	}

	s.logger.Debug("indexed record", "collection", collection, "chunks", len(ids))
	return ids, nil
}

// Delete looks up join entries by the filters and removes their chunks from
// the index, then the entries themselves. Returns false without touching
// either store when no chunk IDs are on file; the bool means "nothing in
// the search index", not "nothing in the record store".
func (s *Synchronizer) Delete(ctx context.Context, collection string, filters document.Filter) (bool, error) {
	entries, err := s.joins.Find(ctx, collection, filters)
	if err != nil {
		return false, fmt.Errorf("find join entries for %s: %w", collection, err)
	}

	var ids []string
	for _, entry := range entries {
		ids = append(ids, entry.ChunkIDs()...)
	}

	if len(ids) == 0 {
		s.logger.Warn("nothing found in search index", "collection", collection, "filters", fmt.Sprintf("%v", filters))
		return false, nil
	}

	if err := s.index.Delete(ctx, collection, ids); err != nil {
		return false, fmt.Errorf("delete from index %s: %w", collection, err)
	}

	if _, err := s.joins.Delete(ctx, collection, filters); err != nil {
		return false, fmt.Errorf("delete join entries for %s: %w", collection, err)
	}

	s.logger.Debug("removed record from index", "collection", collection, "chunks", len(ids))
	return true, nil
}

// Update replaces a record's index entries: delete by filters, then insert
// the new text and metadata. The two steps are not atomic; a reader in
// between sees the record missing from the index.
func (s *Synchronizer) Update(ctx context.Context, collection string, filters document.Filter, text string, metadata document.Metadata) ([]string, error) {
	if _, err := s.Delete(ctx, collection, filters); err != nil {
		return nil, err
	}
	return s.Insert(ctx, collection, text, metadata)
}
