package models

// SnapshotSchemaVersion текущая версия схемы снапшота страницы.
// v1 (эра sparse-fill-map) апгрейдится до v2 с пустым прогрессом:
// старые sparse-заливки невозможно восстановить без index mapping,
// который существовал только в рантайме. Это осознанная lossy-миграция.
const SnapshotSchemaVersion = 2

// PageSnapshot представляет каноническое состояние одной страницы раскраски
// на устройстве. Хранится по ключу (PageID, ContentHash): смена ContentHash
// означает, что автор перерисовал регионы, и старые байты прогресса
// не должны применяться к новой разметке.
type PageSnapshot struct {
	UndoStackB64   []string `json:"undo_stack_b64"`   // UndoStackB64 предыдущие ProgressB64 (oldest -> newest), ограничен по глубине
	PageID         string   `json:"page_id"`          // PageID идентификатор страницы
	ContentHash    string   `json:"content_hash"`     // ContentHash хеш разметки регионов страницы
	ProgressB64    string   `json:"progress_b64"`     // ProgressB64 base64 packed progress, ровно RegionsCount байт
	ClientRev      int64    `json:"client_rev"`       // ClientRev монотонный логический clock устройства
	UpdatedAtMs    int64    `json:"updated_at_ms"`    // UpdatedAtMs время последнего изменения (unix ms)
	SchemaVersion  int      `json:"schema_version"`   // SchemaVersion версия схемы записи
	PaletteIdx     int      `json:"palette_idx"`      // PaletteIdx последний выбранный цвет палитры
	RegionsCount   int      `json:"regions_count"`    // RegionsCount количество регионов страницы
	PaletteLen     int      `json:"palette_len"`      // PaletteLen размер палитры страницы
	UndoBudgetUsed int      `json:"undo_budget_used"` // UndoBudgetUsed сколько undo израсходовано за сессию
}

// Clone создает глубокую копию снапшота
func (s *PageSnapshot) Clone() *PageSnapshot {
	clone := *s
	clone.UndoStackB64 = make([]string, len(s.UndoStackB64))
	copy(clone.UndoStackB64, s.UndoStackB64)
	return &clone
}
