package models

// OutboxEntry представляет единственный отложенный write-intent синхронизации.
// Слот один на устройство (не очередь): для me-state важен только последний
// (lastPageId, clientRev), более новый intent перезаписывает старый.
// Слот очищается только после подтверждения сервером ревизии >= queued.
type OutboxEntry struct {
	LastPageID string `json:"last_page_id"` // LastPageID страница, открытая последней
	ClientRev  int64  `json:"client_rev"`   // ClientRev ревизия на момент постановки в очередь
	QueuedAtMs int64  `json:"queued_at_ms"` // QueuedAtMs время постановки (unix ms)
}
