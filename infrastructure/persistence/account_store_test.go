package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifly-app/unifly/domain/account"
	"github.com/unifly-app/unifly/domain/repository"
	"github.com/unifly-app/unifly/internal/database"
)

// newTestDB creates an in-memory SQLite database for testing.
func newTestDB(t *testing.T) database.Database {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewDatabase(ctx, "sqlite:///:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestAccountStore(t *testing.T) *AccountStore {
	t.Helper()
	store, err := NewAccountStore(newTestDB(t), nil)
	require.NoError(t, err)
	return store
}

func TestAccountStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestAccountStore(t)

	user := account.NewUser(42, "ada@example.com", "Ada", account.RoleStudent, account.StatusActive)
	require.NoError(t, store.Save(ctx, user))

	got, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID())
	assert.Equal(t, "ada@example.com", got.Email())
	assert.Equal(t, account.RoleStudent, got.Role())
	assert.True(t, got.Active())
	assert.False(t, got.CreatedAt().IsZero())
}

func TestAccountStore_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestAccountStore(t)

	_, err := store.Get(ctx, 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestAccountStore_Save_Upsert(t *testing.T) {
	ctx := context.Background()
	store := newTestAccountStore(t)

	user := account.NewUser(7, "bo@example.com", "Bo", account.RoleAdvisor, account.StatusActive)
	require.NoError(t, store.Save(ctx, user))
	require.NoError(t, store.Save(ctx, account.NewUser(7, "bo@example.com", "Bo Chen", account.RoleAdvisor, account.StatusSuspended)))

	got, err := store.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Bo Chen", got.Name())
	assert.Equal(t, account.StatusSuspended, got.Status())

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAccountStore_GetByEmail(t *testing.T) {
	ctx := context.Background()
	store := newTestAccountStore(t)

	require.NoError(t, store.Save(ctx, account.NewUser(1, "kim@example.com", "Kim", account.RoleParent, account.StatusActive)))

	got, err := store.GetByEmail(ctx, "kim@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.UserID())
}

func TestAccountStore_List_FiltersAndPagination(t *testing.T) {
	ctx := context.Background()
	store := newTestAccountStore(t)

	require.NoError(t, store.Save(ctx, account.NewUser(1, "a@example.com", "A", account.RoleStudent, account.StatusActive)))
	require.NoError(t, store.Save(ctx, account.NewUser(2, "b@example.com", "B", account.RoleStudent, account.StatusInactive)))
	require.NoError(t, store.Save(ctx, account.NewUser(3, "c@example.com", "C", account.RoleAdmin, account.StatusActive)))

	students, err := store.List(ctx, repository.WithRole(string(account.RoleStudent)))
	require.NoError(t, err)
	assert.Len(t, students, 2)

	active, err := store.List(ctx, repository.WithStatus(string(account.StatusActive)))
	require.NoError(t, err)
	assert.Len(t, active, 2)

	page, err := store.List(ctx, repository.WithLimit(2))
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

func TestAccountStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestAccountStore(t)

	require.NoError(t, store.Save(ctx, account.NewUser(5, "d@example.com", "D", account.RoleStudent, account.StatusActive)))
	require.NoError(t, store.Delete(ctx, 5))

	_, err := store.Get(ctx, 5)
	assert.ErrorIs(t, err, database.ErrNotFound)
}
