package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ivmaks/raskraska/internal/client/storage"
	"github.com/ivmaks/raskraska/internal/models"
	"github.com/ivmaks/raskraska/internal/progress"
)

const (
	// keyLastPage singleton-ключ указателя "последняя открытая страница"
	keyLastPage = "last_page"

	// maxUndoEntries верхняя граница глубины undo-стека в хранимой записи.
	// Защита от раздутого/подделанного стека; лишние (самые старые)
	// записи молча отбрасываются.
	maxUndoEntries = 64
)

// Meta форма страницы, известная вызывающему из контента.
// Используется как fallback, когда хранимая запись повреждена
// или апгрейдится со старой схемы.
type Meta struct {
	RegionsCount int // количество регионов текущей разметки
	PaletteLen   int // размер палитры текущей разметки
}

// Store является единственной границей персистентности состояния страниц:
// владеет валидацией, канонизацией и апгрейдом схемы. Всё, что прочитано
// из KV, считается недоверенным, даже если писали мы сами.
type Store struct {
	kv     storage.KVStorage
	logger *slog.Logger
}

// NewStore creates a new snapshot store over the KV persistence boundary
func NewStore(kv storage.KVStorage, logger *slog.Logger) *Store {
	return &Store{
		kv:     kv,
		logger: logger,
	}
}

// pageKey формирует ключ записи страницы
func pageKey(pageID, contentHash string) string {
	return fmt.Sprintf("page:%s:%s", pageID, contentHash)
}

// rawSnapshot хранимое представление: поля v2 плюс поля старых схем,
// нужные только для детекта и апгрейда
type rawSnapshot struct {
	Fills map[string]string `json:"fills,omitempty"` // v1: sparse-карта заливок
	models.PageSnapshot
}

// Load читает снапшот страницы по ключу (pageID, contentHash).
// Возвращает (nil, nil), если записи нет или она не читается: свежая
// страница и повреждённая запись для вызывающего неразличимы.
// Запись с чужим pageId/contentHash тоже считается отсутствующей —
// защита от коллизий ключей в общем KV namespace.
func (s *Store) Load(ctx context.Context, pageID, contentHash string, meta Meta) (*models.PageSnapshot, error) {
	data, err := s.kv.Get(ctx, pageKey(pageID, contentHash))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		// Битый JSON деградирует до "свежая страница", никогда не падает
		s.logger.Warn("Dropping corrupted snapshot record",
			"page_id", pageID, "error", err)
		return nil, nil
	}

	snap := raw.PageSnapshot

	// Identity check: запись должна принадлежать запрошенному ключу
	if snap.PageID != pageID || snap.ContentHash != contentHash {
		s.logger.Warn("Snapshot identity mismatch, treating as fresh page",
			"requested_page", pageID, "stored_page", snap.PageID)
		return nil, nil
	}

	if snap.SchemaVersion < models.SnapshotSchemaVersion {
		s.upgrade(&snap, meta, len(raw.Fills))
	}

	s.sanitize(&snap, meta)

	return &snap, nil
}

// Save валидирует, канонизирует и записывает снапшот.
// ProgressB64 прогоняется через decode -> re-encode, undo-стек фильтруется
// до записей правильной длины: устаревшая запись undo (до смены контента)
// не должна позже вернуться в несовпадающий набор регионов.
func (s *Store) Save(ctx context.Context, snap *models.PageSnapshot) error {
	cp := snap.Clone()
	cp.SchemaVersion = models.SnapshotSchemaVersion
	if cp.UpdatedAtMs <= 0 {
		cp.UpdatedAtMs = time.Now().UnixMilli()
	}

	s.sanitize(cp, Meta{RegionsCount: cp.RegionsCount, PaletteLen: cp.PaletteLen})

	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := s.kv.Set(ctx, pageKey(cp.PageID, cp.ContentHash), data); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Delete удаляет запись страницы
func (s *Store) Delete(ctx context.Context, pageID, contentHash string) error {
	if err := s.kv.Delete(ctx, pageKey(pageID, contentHash)); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// LoadLastPage читает singleton-указатель "последняя открытая страница".
// Возвращает пустую строку, если страница ещё не выбиралась.
func (s *Store) LoadLastPage(ctx context.Context) (string, error) {
	data, err := s.kv.Get(ctx, keyLastPage)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load last page: %w", err)
	}
	return string(data), nil
}

// SaveLastPage записывает singleton-указатель "последняя открытая страница"
func (s *Store) SaveLastPage(ctx context.Context, pageID string) error {
	if err := s.kv.Set(ctx, keyLastPage, []byte(pageID)); err != nil {
		return fmt.Errorf("failed to save last page: %w", err)
	}
	return nil
}

// ClearLastPage удаляет указатель "последняя открытая страница"
func (s *Store) ClearLastPage(ctx context.Context) error {
	if err := s.kv.Delete(ctx, keyLastPage); err != nil {
		return fmt.Errorf("failed to clear last page: %w", err)
	}
	return nil
}

// upgrade поднимает запись старой схемы до текущей.
// v1 (sparse-fill-map) апгрейдится с ПУСТЫМ прогрессом: старые sparse-заливки
// невосстановимы без index mapping, существовавшего только в рантайме.
// clientRev и счётчики сохраняются, состояние закраски намеренно сбрасывается.
func (s *Store) upgrade(snap *models.PageSnapshot, meta Meta, droppedFills int) {
	s.logger.Info("Upgrading snapshot schema",
		"page_id", snap.PageID,
		"from", snap.SchemaVersion,
		"to", models.SnapshotSchemaVersion,
		"dropped_fills", droppedFills)

	snap.SchemaVersion = models.SnapshotSchemaVersion
	snap.RegionsCount = meta.RegionsCount
	snap.PaletteLen = meta.PaletteLen
	snap.ProgressB64 = progress.EmptyPacked(meta.RegionsCount).B64()
	snap.UndoStackB64 = nil
}

// sanitize приводит все поля снапшота к well-formed виду.
// Ранее записанным данным не доверяем: ручные правки и порча
// хранилища не должны ронять приложение на следующем старте.
func (s *Store) sanitize(snap *models.PageSnapshot, meta Meta) {
	if snap.RegionsCount <= 0 {
		snap.RegionsCount = meta.RegionsCount
	}
	snap.RegionsCount = clampInt(snap.RegionsCount, 0, progress.MaxRegions)

	if snap.PaletteLen <= 0 {
		snap.PaletteLen = meta.PaletteLen
	}
	snap.PaletteLen = clampInt(snap.PaletteLen, 0, progress.MaxPaletteLen)

	if snap.ClientRev < 0 {
		snap.ClientRev = 0
	}
	if snap.UndoBudgetUsed < 0 {
		snap.UndoBudgetUsed = 0
	}
	if snap.UpdatedAtMs < 0 {
		snap.UpdatedAtMs = 0
	}
	maxIdx := snap.PaletteLen - 1
	if maxIdx < 0 {
		maxIdx = 0
	}
	snap.PaletteIdx = clampInt(snap.PaletteIdx, 0, maxIdx)

	// decode -> re-encode нормализует представление; невалидный прогресс
	// заменяется пустым для текущего regionsCount
	packed, err := progress.ParsePacked(snap.ProgressB64, snap.RegionsCount, snap.PaletteLen)
	if err != nil {
		if snap.ProgressB64 != "" {
			s.logger.Warn("Resetting invalid snapshot progress",
				"page_id", snap.PageID, "error", err)
		}
		packed = progress.EmptyPacked(snap.RegionsCount)
	}
	snap.ProgressB64 = packed.B64()

	snap.UndoStackB64 = s.filterUndoStack(snap)
}

// filterUndoStack оставляет только записи undo-стека, декодируемые ровно
// в regionsCount байт (защита от poisoned state), и обрезает стек
// до maxUndoEntries, отбрасывая самые старые записи
func (s *Store) filterUndoStack(snap *models.PageSnapshot) []string {
	filtered := make([]string, 0, len(snap.UndoStackB64))
	for _, entry := range snap.UndoStackB64 {
		if _, err := progress.DecodeBase64(entry, snap.RegionsCount, snap.PaletteLen); err != nil {
			s.logger.Warn("Dropping invalid undo entry",
				"page_id", snap.PageID, "error", err)
			continue
		}
		filtered = append(filtered, entry)
	}

	if len(filtered) > maxUndoEntries {
		filtered = filtered[len(filtered)-maxUndoEntries:]
	}

	return filtered
}

// clampInt обрезает значение в диапазон [lo, hi]
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
