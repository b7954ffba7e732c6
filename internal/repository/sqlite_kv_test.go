package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/tomato/internal/db"
	"github.com/alexanderramin/tomato/internal/repository"
	"github.com/alexanderramin/tomato/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRepo_GetMissingKey(t *testing.T) {
	repo := repository.NewSQLiteKVRepo(testutil.NewTestDB(t))

	rec, err := repo.Get(context.Background(), "stats")
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestKVRepo_SetThenGet(t *testing.T) {
	repo := repository.NewSQLiteKVRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	require.NoError(t, repo.Set(ctx, "theme", "dark"))

	rec, err := repo.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "theme", rec.Key)
	assert.Equal(t, "dark", rec.Value)
	assert.False(t, rec.UpdatedAt.Before(before.Truncate(time.Second)))
}

func TestKVRepo_SetOverwrites(t *testing.T) {
	repo := repository.NewSQLiteKVRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "theme", "dark"))
	require.NoError(t, repo.Set(ctx, "theme", "light"))

	rec, err := repo.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", rec.Value)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestKVRepo_Delete(t *testing.T) {
	repo := repository.NewSQLiteKVRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "stats", `{"workSessionsCompleted":1}`))
	require.NoError(t, repo.Delete(ctx, "stats"))

	_, err := repo.Get(ctx, "stats")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "stats"), repository.ErrNotFound)
}

func TestKVRepo_ListSortedByKey(t *testing.T) {
	repo := repository.NewSQLiteKVRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "theme", "dark"))
	require.NoError(t, repo.Set(ctx, "stats", "{}"))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "stats", all[0].Key)
	assert.Equal(t, "theme", all[1].Key)
}

func TestKVRepo_WithinTxRollback(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteKVRepo(tx).Set(ctx, "theme", "dark"); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = repository.NewSQLiteKVRepo(database).Get(ctx, "theme")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
