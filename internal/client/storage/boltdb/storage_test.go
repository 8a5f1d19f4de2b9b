package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/ivmaks/raskraska/internal/client/storage"
)

// createTestStorage создает временное BoltDB хранилище и инициализирует buckets
func createTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "raskraska_test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func TestKV_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// Несуществующий ключ
	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	// Сохраняем и читаем
	err = store.Set(ctx, "page:p1:h1", []byte(`{"client_rev":3}`))
	require.NoError(t, err)

	got, err := store.Get(ctx, "page:p1:h1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"client_rev":3}`), got)

	// Перезапись
	err = store.Set(ctx, "page:p1:h1", []byte(`{"client_rev":4}`))
	require.NoError(t, err)

	got, err = store.Get(ctx, "page:p1:h1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"client_rev":4}`), got)

	// Удаление
	err = store.Delete(ctx, "page:p1:h1")
	require.NoError(t, err)

	_, err = store.Get(ctx, "page:p1:h1")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	// Удаление несуществующего ключа не ошибка
	err = store.Delete(ctx, "missing")
	assert.NoError(t, err)
}

func TestKV_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// Удаляем bucket kv напрямую
	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketKV)
	})
	require.NoError(t, err)

	_, err = store.Get(ctx, "key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "kv bucket not found")

	err = store.Set(ctx, "key", []byte("value"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "kv bucket not found")
}

func TestMetadata_DeviceID(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	_, err := store.GetDeviceID(ctx)
	assert.ErrorIs(t, err, storage.ErrDeviceIDNotFound)

	err = store.SaveDeviceID(ctx, "device-123")
	require.NoError(t, err)

	got, err := store.GetDeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "device-123", got)
}

func TestMetadata_AccessToken(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	_, err := store.GetAccessToken(ctx)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)

	err = store.SaveAccessToken(ctx, "jwt-token")
	require.NoError(t, err)

	got, err := store.GetAccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", got)

	err = store.DeleteAccessToken(ctx)
	require.NoError(t, err)

	_, err = store.GetAccessToken(ctx)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestStorage_Closed(t *testing.T) {
	ctx := context.Background()
	s := &Storage{}

	_, err := s.Get(ctx, "key")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = s.Set(ctx, "key", nil)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = s.Delete(ctx, "key")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
