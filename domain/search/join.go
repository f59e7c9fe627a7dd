package search

import (
	"context"

	"github.com/unifly-app/unifly/domain/document"
)

// ChunkIDsField is the join-entry field holding the vector entry IDs.
const ChunkIDsField = "qids"

// JoinEntry records which vector entry IDs were produced for one source
// record: the record's metadata fields plus the ordered chunk ID list. It
// is a derived, disposable cache — fully replaced on update, removed on
// delete — keyed by the same filters used to look up the record.
type JoinEntry struct {
	metadata document.Metadata
	chunkIDs []string
}

// NewJoinEntry creates a JoinEntry.
func NewJoinEntry(metadata document.Metadata, chunkIDs []string) JoinEntry {
	ids := make([]string, len(chunkIDs))
	copy(ids, chunkIDs)
	return JoinEntry{metadata: metadata.Clone(), chunkIDs: ids}
}

// Metadata returns the record metadata stored on the entry.
func (e JoinEntry) Metadata() document.Metadata { return e.metadata.Clone() }

// ChunkIDs returns the ordered vector entry IDs, one per chunk.
func (e JoinEntry) ChunkIDs() []string {
	ids := make([]string, len(e.chunkIDs))
	copy(ids, e.chunkIDs)
	return ids
}

// JoinStore persists join entries, one collection per vector-index
// collection (named identically).
type JoinStore interface {
	// Insert adds one entry to the collection.
	Insert(ctx context.Context, collection string, entry JoinEntry) error

	// Find returns all entries whose metadata matches the filter.
	Find(ctx context.Context, collection string, filter document.Filter) ([]JoinEntry, error)

	// Delete removes all entries whose metadata matches the filter and
	// returns the number removed.
	Delete(ctx context.Context, collection string, filter document.Filter) (int64, error)
}
