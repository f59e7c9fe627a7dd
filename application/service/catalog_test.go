package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifly-app/unifly/domain/catalog"
	"github.com/unifly-app/unifly/domain/document"
	"github.com/unifly-app/unifly/infrastructure/chunking"
	"github.com/unifly-app/unifly/infrastructure/persistence"
	searchinfra "github.com/unifly-app/unifly/infrastructure/search"
)

type catalogFixture struct {
	service *Catalog
	store   *persistence.MemoryDocumentStore
	index   *searchinfra.MemoryIndex
	joins   *persistence.MemoryJoinStore
}

func newCatalogFixture(t *testing.T) catalogFixture {
	t.Helper()
	store := persistence.NewMemoryDocumentStore()
	index := searchinfra.NewMemoryIndex()
	joins := persistence.NewMemoryJoinStore()
	sync := NewSynchronizer(index, joins, chunking.DefaultSplitter(), nil)
	entities := catalog.Build(nil, nil)
	return catalogFixture{
		service: NewCatalog(entities, store, sync, 10, nil),
		store:   store,
		index:   index,
		joins:   joins,
	}
}

func TestCatalog_Create_SearchableEntityIsIndexed(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)

	result, err := f.service.Create(ctx, "scholarships", document.Record{
		"scholarship_id": 1,
		"provider_id":    3,
		"contact":        "grants@example.com",
		"description":    "full tuition scholarship for undergraduates",
	})
	require.NoError(t, err)
	assert.True(t, result.Acknowledged)
	assert.NotEmpty(t, result.ID)

	// Document stored.
	stored, err := f.store.FindOne(ctx, "scholarships", document.Filter{"scholarship_id": 1})
	require.NoError(t, err)
	require.NotNil(t, stored)

	// Index carries the chunk; join entry carries metadata incl. the
	// denormalized reference.
	assert.Equal(t, 1, f.index.Size("scholarships"))
	entries, err := f.joins.Find(ctx, "scholarships", document.Filter{"scholarship_id": 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	meta := entries[0].Metadata()
	assert.Equal(t, 3, meta["provider_id"])
	assert.Equal(t, "grants@example.com", meta[catalog.ReferenceField])
	assert.NotContains(t, meta, "description")
}

func TestCatalog_Create_NonSearchableEntitySkipsIndex(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)

	_, err := f.service.Create(ctx, "plans", document.Record{"plan_id": 1, "title": "My Plan"})
	require.NoError(t, err)

	assert.Zero(t, f.index.Size("plans"))
}

func TestCatalog_UnknownEntity(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)

	_, err := f.service.Create(ctx, "nonsense", document.Record{})
	assert.ErrorIs(t, err, ErrUnknownEntity)

	_, err = f.service.Filter(ctx, "nonsense", document.Filter{}, document.Page{})
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

func TestCatalog_GetAndFilter(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)

	_, err := f.service.Create(ctx, "universities", document.Record{"university_id": 11, "name": "North University", "contact": "info@north.edu"})
	require.NoError(t, err)
	_, err = f.service.Create(ctx, "universities", document.Record{"university_id": 12, "name": "South University", "contact": "info@south.edu"})
	require.NoError(t, err)

	got, err := f.service.Get(ctx, "universities", 11)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "North University", got["name"])

	missing, err := f.service.Get(ctx, "universities", 99)
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := f.service.Filter(ctx, "universities", document.Filter{}, document.Page{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	count, err := f.service.Count(ctx, "universities", document.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCatalog_Update_ReindexesMatchedRecords(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)

	_, err := f.service.Create(ctx, "university-programs", document.Record{
		"program_id":    1,
		"department_id": 2,
		"university_id": 3,
		"description":   "a short program description",
	})
	require.NoError(t, err)

	oldEntries, err := f.joins.Find(ctx, "university_programs", document.Filter{"program_id": 1})
	require.NoError(t, err)
	require.Len(t, oldEntries, 1)

	result, err := f.service.Update(ctx, "university-programs", document.Filter{"program_id": 1}, document.Record{"description": "a completely rewritten description"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.MatchedCount)
	assert.Equal(t, int64(1), result.ModifiedCount)

	newEntries, err := f.joins.Find(ctx, "university_programs", document.Filter{"program_id": 1})
	require.NoError(t, err)
	require.Len(t, newEntries, 1)
	assert.NotEqual(t, oldEntries[0].ChunkIDs(), newEntries[0].ChunkIDs())

	hits, err := f.service.Search(ctx, "university-programs", "rewritten description", 5)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Contains(t, hits[0].Text(), "rewritten")
}

func TestCatalog_Update_NoModificationSkipsReindex(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)

	_, err := f.service.Create(ctx, "universities", document.Record{"university_id": 1, "name": "Same Name"})
	require.NoError(t, err)

	entriesBefore, err := f.joins.Find(ctx, "universities", document.Filter{"university_id": 1})
	require.NoError(t, err)

	result, err := f.service.Update(ctx, "universities", document.Filter{"university_id": 1}, document.Record{"name": "Same Name"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.MatchedCount)
	assert.Equal(t, int64(0), result.ModifiedCount)

	entriesAfter, err := f.joins.Find(ctx, "universities", document.Filter{"university_id": 1})
	require.NoError(t, err)
	assert.Equal(t, entriesBefore[0].ChunkIDs(), entriesAfter[0].ChunkIDs())
}

func TestCatalog_Delete_RemovesDocumentsAndIndexEntries(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)

	_, err := f.service.Create(ctx, "university-people", document.Record{"person_id": 1, "university_id": 5, "bio": "a professor of physics"})
	require.NoError(t, err)

	result, err := f.service.Delete(ctx, "university-people", document.Filter{"person_id": 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.DeletedCount)

	assert.Zero(t, f.index.Size("university_people"))
	count, err := f.service.Count(ctx, "university-people", document.Filter{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCatalog_Delete_NoMatchLeavesIndexAlone(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)

	_, err := f.service.Create(ctx, "universities", document.Record{"university_id": 1, "name": "Kept"})
	require.NoError(t, err)

	result, err := f.service.Delete(ctx, "universities", document.Filter{"university_id": 42})
	require.NoError(t, err)
	assert.Zero(t, result.DeletedCount)
	assert.Equal(t, 1, f.index.Size("universities"))
}

func TestCatalog_Search_NonSearchableEntity(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)

	_, err := f.service.Search(ctx, "plans", "anything", 5)
	assert.ErrorIs(t, err, ErrNotSearchable)
}
