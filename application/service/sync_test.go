package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifly-app/unifly/domain/document"
	"github.com/unifly-app/unifly/domain/search"
	"github.com/unifly-app/unifly/infrastructure/chunking"
	"github.com/unifly-app/unifly/infrastructure/persistence"
	searchinfra "github.com/unifly-app/unifly/infrastructure/search"
)

func newTestSynchronizer(t *testing.T) (*Synchronizer, *searchinfra.MemoryIndex, *persistence.MemoryJoinStore) {
	t.Helper()
	index := searchinfra.NewMemoryIndex()
	joins := persistence.NewMemoryJoinStore()
	splitter, err := chunking.NewSplitter(10, 2)
	require.NoError(t, err)
	return NewSynchronizer(index, joins, splitter, nil), index, joins
}

func TestSynchronizer_Insert(t *testing.T) {
	ctx := context.Background()
	sync, index, joins := newTestSynchronizer(t)

	// 26 runes with size 10 and overlap 2 chunk into three pieces.
	text := strings.Repeat("scholarly ", 2) + "thesis"
	metadata := document.Metadata{"scholarship_id": 5, "provider_id": 2}

	ids, err := sync.Insert(ctx, "scholarships", text, metadata)
	require.NoError(t, err)
	require.Len(t, ids, 3)
	assert.Equal(t, 3, index.Size("scholarships"))

	entries, err := joins.Find(ctx, "scholarships", document.Filter{"scholarship_id": 5})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ids, entries[0].ChunkIDs())
	assert.Equal(t, 2, entries[0].Metadata()["provider_id"])
}

func TestSynchronizer_InsertThenDelete_RemovesAllChunks(t *testing.T) {
	ctx := context.Background()
	sync, index, joins := newTestSynchronizer(t)

	_, err := sync.Insert(ctx, "scholarships", strings.Repeat("grant money for students ", 3), document.Metadata{"scholarship_id": 1})
	require.NoError(t, err)
	require.Greater(t, index.Size("scholarships"), 1)

	found, err := sync.Delete(ctx, "scholarships", document.Filter{"scholarship_id": 1})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Zero(t, index.Size("scholarships"))

	entries, err := joins.Find(ctx, "scholarships", document.Filter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSynchronizer_Delete_NothingFound(t *testing.T) {
	ctx := context.Background()
	sync, index, joins := newTestSynchronizer(t)

	_, err := sync.Insert(ctx, "scholarships", "generous stipend", document.Metadata{"scholarship_id": 1})
	require.NoError(t, err)
	before := index.Size("scholarships")

	found, err := sync.Delete(ctx, "scholarships", document.Filter{"scholarship_id": 999})
	require.NoError(t, err)
	assert.False(t, found)

	// No mutation on either store.
	assert.Equal(t, before, index.Size("scholarships"))
	entries, err := joins.Find(ctx, "scholarships", document.Filter{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSynchronizer_Update_ReplacesChunkIDs(t *testing.T) {
	ctx := context.Background()
	sync, index, joins := newTestSynchronizer(t)

	oldIDs, err := sync.Insert(ctx, "universities", "old description text here", document.Metadata{"university_id": 4})
	require.NoError(t, err)

	newIDs, err := sync.Update(ctx, "universities", document.Filter{"university_id": 4}, "completely new description", document.Metadata{"university_id": 4})
	require.NoError(t, err)

	for _, oldID := range oldIDs {
		assert.NotContains(t, newIDs, oldID)
	}

	entries, err := joins.Find(ctx, "universities", document.Filter{"university_id": 4})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, newIDs, entries[0].ChunkIDs())
	assert.Equal(t, len(newIDs), index.Size("universities"))
}

func TestSynchronizer_Update_OnMissingRecordInserts(t *testing.T) {
	ctx := context.Background()
	sync, _, joins := newTestSynchronizer(t)

	// An update for filters with no join entries degrades to an insert.
	ids, err := sync.Update(ctx, "universities", document.Filter{"university_id": 9}, "fresh record", document.Metadata{"university_id": 9})
	require.NoError(t, err)
	assert.NotEmpty(t, ids)

	entries, err := joins.Find(ctx, "universities", document.Filter{"university_id": 9})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSynchronizer_DoubleInsert_DuplicatesEntries(t *testing.T) {
	ctx := context.Background()
	sync, index, joins := newTestSynchronizer(t)

	metadata := document.Metadata{"scholarship_id": 7}
	first, err := sync.Insert(ctx, "scholarships", "need based grant", metadata)
	require.NoError(t, err)
	second, err := sync.Insert(ctx, "scholarships", "need based grant", metadata)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	entries, err := joins.Find(ctx, "scholarships", document.Filter{"scholarship_id": 7})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, len(first)+len(second), index.Size("scholarships"))

	// A single delete clears both generations.
	found, err := sync.Delete(ctx, "scholarships", document.Filter{"scholarship_id": 7})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Zero(t, index.Size("scholarships"))
}

// failingJoinStore fails every write, simulating a joiner outage after the
// index write succeeded.
type failingJoinStore struct {
	*persistence.MemoryJoinStore
}

func (f failingJoinStore) Insert(context.Context, string, search.JoinEntry) error {
	return errors.New("joiner unavailable")
}

func TestSynchronizer_Insert_JoinFailureLeavesIndexEntries(t *testing.T) {
	ctx := context.Background()
	index := searchinfra.NewMemoryIndex()
	joins := failingJoinStore{MemoryJoinStore: persistence.NewMemoryJoinStore()}
	sync := NewSynchronizer(index, joins, chunking.DefaultSplitter(), nil)

	_, err := sync.Insert(ctx, "universities", "orphaned text", document.Metadata{"university_id": 1})
	require.Error(t, err)

	// The index write is not rolled back.
	assert.Equal(t, 1, index.Size("universities"))
}
