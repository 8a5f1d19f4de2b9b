package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ivmaks/raskraska/internal/client/storage"
	"github.com/ivmaks/raskraska/internal/models"
)

// keyPending единственный слот отложенного write-intent
const keyPending = "outbox:pending"

// Outbox гарантирует, что намерение синхронизации переживает crash/reload
// до завершения сетевого запроса. Слот один (coalescing, не очередь):
// для me-state важен только последний (lastPageId, clientRev).
type Outbox struct {
	kv     storage.KVStorage
	logger *slog.Logger
}

// New creates a new outbox over the KV persistence boundary
func New(kv storage.KVStorage, logger *slog.Logger) *Outbox {
	return &Outbox{
		kv:     kv,
		logger: logger,
	}
}

// Enqueue перезаписывает слот новым intent (last-writer-wins локально)
func (o *Outbox) Enqueue(ctx context.Context, lastPageID string, clientRev int64) error {
	entry := models.OutboxEntry{
		LastPageID: lastPageID,
		ClientRev:  clientRev,
		QueuedAtMs: time.Now().UnixMilli(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox entry: %w", err)
	}

	if err := o.kv.Set(ctx, keyPending, data); err != nil {
		return fmt.Errorf("failed to enqueue outbox entry: %w", err)
	}

	return nil
}

// LoadPending возвращает отложенный intent или nil, если слот пуст.
// Нечитаемый слот деградирует до пустого: терять один intent лучше,
// чем падать на каждом flush.
func (o *Outbox) LoadPending(ctx context.Context) (*models.OutboxEntry, error) {
	data, err := o.kv.Get(ctx, keyPending)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load outbox entry: %w", err)
	}

	var entry models.OutboxEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		o.logger.Warn("Dropping corrupted outbox entry", "error", err)
		if err := o.kv.Delete(ctx, keyPending); err != nil {
			o.logger.Warn("Failed to clear corrupted outbox entry", "error", err)
		}
		return nil, nil
	}

	return &entry, nil
}

// ClearPending очищает слот. Вызывается только после подтверждения сервером
// ревизии >= queued; при сетевой ошибке слот остаётся для повторной попытки.
func (o *Outbox) ClearPending(ctx context.Context) error {
	if err := o.kv.Delete(ctx, keyPending); err != nil {
		return fmt.Errorf("failed to clear outbox entry: %w", err)
	}
	return nil
}
