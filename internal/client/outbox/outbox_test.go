package outbox

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivmaks/raskraska/internal/client/storage"
)

func newMemKV() *storage.KVStorageMock {
	values := make(map[string][]byte)
	return &storage.KVStorageMock{
		GetFunc: func(ctx context.Context, key string) ([]byte, error) {
			if v, ok := values[key]; ok {
				return v, nil
			}
			return nil, storage.ErrKeyNotFound
		},
		SetFunc: func(ctx context.Context, key string, value []byte) error {
			values[key] = value
			return nil
		},
		DeleteFunc: func(ctx context.Context, key string) error {
			delete(values, key)
			return nil
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestOutbox_EmptySlot(t *testing.T) {
	ctx := context.Background()
	ob := New(newMemKV(), testLogger())

	pending, err := ob.LoadPending(ctx)
	require.NoError(t, err)
	assert.Nil(t, pending)
}

func TestOutbox_EnqueueOverwrites(t *testing.T) {
	ctx := context.Background()
	ob := New(newMemKV(), testLogger())

	require.NoError(t, ob.Enqueue(ctx, "p1", 3))
	require.NoError(t, ob.Enqueue(ctx, "p2", 4))

	pending, err := ob.LoadPending(ctx)
	require.NoError(t, err)
	require.NotNil(t, pending)

	// Более новый intent перезаписал старый
	assert.Equal(t, "p2", pending.LastPageID)
	assert.Equal(t, int64(4), pending.ClientRev)
	assert.Positive(t, pending.QueuedAtMs)
}

func TestOutbox_ClearPending(t *testing.T) {
	ctx := context.Background()
	ob := New(newMemKV(), testLogger())

	require.NoError(t, ob.Enqueue(ctx, "p1", 3))
	require.NoError(t, ob.ClearPending(ctx))

	pending, err := ob.LoadPending(ctx)
	require.NoError(t, err)
	assert.Nil(t, pending)
}

func TestOutbox_CorruptedSlotDegrades(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	ob := New(kv, testLogger())

	require.NoError(t, kv.Set(ctx, "outbox:pending", []byte("{broken")))

	pending, err := ob.LoadPending(ctx)
	require.NoError(t, err)
	assert.Nil(t, pending)

	// Битый слот был вычищен
	_, err = kv.Get(ctx, "outbox:pending")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestOutbox_StorageFailurePropagates(t *testing.T) {
	ctx := context.Background()
	kv := &storage.KVStorageMock{
		GetFunc: func(ctx context.Context, key string) ([]byte, error) {
			return nil, errors.New("disk on fire")
		},
		SetFunc: func(ctx context.Context, key string, value []byte) error {
			return errors.New("disk on fire")
		},
	}
	ob := New(kv, testLogger())

	_, err := ob.LoadPending(ctx)
	assert.Error(t, err)

	err = ob.Enqueue(ctx, "p1", 1)
	assert.Error(t, err)
}
