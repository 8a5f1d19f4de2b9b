package storage

import "context"

//go:generate moq -out kv_mock.go . KVStorage

// KVStorage defines the plain key-value persistence boundary of the client.
// Снапшоты, outbox и указатель "последняя страница" живут поверх него;
// транзакций между вызовами нет, каждый вызов независим.
type KVStorage interface {
	// Get returns the value for key or ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the value for key, overwriting any previous value
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the value for key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}
