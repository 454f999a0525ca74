package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CaseSim_Go/internal/database"
	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/repository"
	"github.com/osse101/CaseSim_Go/internal/testing/kvtest"
)

func newTestRepo(t *testing.T) *KVRepository {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenSQLite(ctx, filepath.Join(t.TempDir(), "economy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.MigrateSQLite(ctx, db))
	return NewKVRepository(db)
}

func TestKVRepository(t *testing.T) {
	kvtest.Run(t, func(t *testing.T) repository.KeyValue {
		return newTestRepo(t)
	})
}

func TestKVRepository_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "economy.db")

	db, err := database.OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, database.MigrateSQLite(ctx, db))
	require.NoError(t, NewKVRepository(db).SetMany(ctx, map[string]string{"gold": "42"}))
	require.NoError(t, db.Close())

	db, err = database.OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.MigrateSQLite(ctx, db), "migrations are idempotent")

	v, found, err := NewKVRepository(db).Get(ctx, "gold")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "42", v)
}

func TestKVRepository_ClosedDatabase(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.db.Close())

	err := repo.SetMany(context.Background(), map[string]string{"gold": "1"})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	_, _, err = repo.Get(context.Background(), "gold")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
