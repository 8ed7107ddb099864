package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/backend/internal/database"
	"parley/backend/internal/repository"
)

// exerciseKVStore runs the behaviour every backend must share.
func exerciseKVStore(t *testing.T, kv repository.KVStore) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, kv.Set(ctx, "chat-store", []byte(`{"version":1}`)))
	got, err := kv.Get(ctx, "chat-store")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1}`, string(got))

	require.NoError(t, kv.Set(ctx, "chat-store", []byte(`{"version":2}`)))
	got, err = kv.Get(ctx, "chat-store")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":2}`, string(got))

	require.NoError(t, kv.Delete(ctx, "chat-store"))
	_, err = kv.Get(ctx, "chat-store")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, kv.Delete(ctx, "chat-store"))
}

func TestMemoryRepository(t *testing.T) {
	kv := repository.NewMemoryRepository()
	defer func() { _ = kv.Close() }()
	exerciseKVStore(t, kv)
}

func TestSQLiteRepository(t *testing.T) {
	db, err := database.InitDB(filepath.Join(t.TempDir(), "nested", "parley.db"))
	require.NoError(t, err)

	kv := repository.NewSQLiteRepository(db)
	defer func() { _ = kv.Close() }()
	exerciseKVStore(t, kv)
}

func TestSQLiteRepository_DriverErrors(t *testing.T) {
	ctx := context.Background()
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	kv := repository.NewSQLiteRepository(db)
	defer func() { _ = kv.Close() }()

	t.Run("Get wraps driver error", func(t *testing.T) {
		mockDB.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv WHERE key = ?")).
			WithArgs("chat-store").
			WillReturnError(errors.New("disk I/O error"))

		_, err := kv.Get(ctx, "chat-store")
		require.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrNotFound)
		assert.ErrorContains(t, err, "disk I/O error")
	})

	t.Run("Set wraps driver error", func(t *testing.T) {
		mockDB.ExpectExec("INSERT INTO kv").
			WithArgs("chat-store", `{}`, sqlmock.AnyArg()).
			WillReturnError(errors.New("database is locked"))

		err := kv.Set(ctx, "chat-store", []byte(`{}`))
		assert.ErrorContains(t, err, "database is locked")
	})

	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestRedisRepository(t *testing.T) {
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	kv := repository.NewRedisRepository(rdb, "parley:")
	defer func() { _ = kv.Close() }()

	exerciseKVStore(t, kv)

	require.NoError(t, kv.Set(context.Background(), "config-store", []byte(`{}`)))
	assert.True(t, srv.Exists("parley:config-store"))
}

func TestBadgerRepository(t *testing.T) {
	kv, err := repository.NewBadgerRepository(t.TempDir())
	require.NoError(t, err)
	defer func() { _ = kv.Close() }()
	exerciseKVStore(t, kv)
}
