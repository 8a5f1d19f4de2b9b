package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	httpapi "github.com/ivmaks/raskraska/internal/client/api"
	"github.com/ivmaks/raskraska/internal/client/outbox"
	"github.com/ivmaks/raskraska/internal/client/snapshot"
	"github.com/ivmaks/raskraska/internal/client/storage"
	"github.com/ivmaks/raskraska/internal/models"
	"github.com/ivmaks/raskraska/internal/progress"
	"github.com/ivmaks/raskraska/pkg/api"
)

// DefaultDebounce задержка между последней мутацией и push на сервер.
// Серия быстрых тапов схлопывается в один сетевой вызов.
const DefaultDebounce = 800 * time.Millisecond

// Config параметры сессии одной страницы
type Config struct {
	PageID      string        // идентификатор страницы
	ContentHash string        // хеш текущей разметки регионов
	RegionOrder []string      // канонический порядок регионов
	Palette     []string      // палитра страницы
	UndoBudget  int           // лимит undo на сессию, <= 0 = безлимит
	Debounce    time.Duration // задержка debounce, 0 = DefaultDebounce
}

// Deps зависимости сессии
type Deps struct {
	Snapshots *snapshot.Store
	Outbox    *outbox.Outbox
	API       httpapi.ClientAPI
	Metadata  storage.MetadataStorage
	Logger    *slog.Logger
}

// PageSession оркестрирует состояние одной открытой страницы: мутации,
// персистентность, undo и отложенный push на сервер. Вся изменяемая
// сессионная аппаратура живёт в полях экземпляра, а не в глобальных
// переменных: несколько сессий (например, в тестах) не делят состояние.
//
// mu сериализует мутации и undo; flushMu гарантирует не более одного
// push в полёте (TryLock вместо булевых in-flight флагов).
type PageSession struct {
	deps     Deps
	sctx     context.Context
	cancel   context.CancelFunc
	packCtx  *progress.Context
	snap     *models.PageSnapshot
	timer    *time.Timer
	pageID   string
	hash     string
	undo     UndoHistory
	debounce time.Duration
	mu       sync.Mutex
	flushMu  sync.Mutex
	closed   bool
}

// NewPageSession компилирует Pack Context и создает сессию страницы.
// Ошибка компиляции — это контрактная ошибка контента; продолжать
// со сломанным контекстом нельзя.
func NewPageSession(cfg Config, deps Deps) (*PageSession, error) {
	packCtx, err := progress.Compile(cfg.RegionOrder, cfg.Palette, progress.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to compile pack context: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	sctx, cancel := context.WithCancel(context.Background())

	return &PageSession{
		deps:     deps,
		sctx:     sctx,
		cancel:   cancel,
		packCtx:  packCtx,
		pageID:   cfg.PageID,
		hash:     cfg.ContentHash,
		undo:     UndoHistory{Budget: cfg.UndoBudget},
		debounce: debounce,
		snap:     freshSnapshot(cfg.PageID, cfg.ContentHash, packCtx),
	}, nil
}

// freshSnapshot возвращает чистое состояние страницы
func freshSnapshot(pageID, contentHash string, packCtx *progress.Context) *models.PageSnapshot {
	return &models.PageSnapshot{
		SchemaVersion: models.SnapshotSchemaVersion,
		PageID:        pageID,
		ContentHash:   contentHash,
		ProgressB64:   progress.EmptyPacked(packCtx.RegionsCount()).B64(),
		RegionsCount:  packCtx.RegionsCount(),
		PaletteLen:    packCtx.PaletteLen(),
	}
}

// Boot восстанавливает локальное состояние и сверяется с сервером.
// Локальный снапшот — источник истины для прогресса; сервер может только
// подвинуть lastPageId и поднять clientRev, но никогда не откатить их.
// Сетевые ошибки проглатываются: local-first работа продолжается.
func (s *PageSession) Boot(ctx context.Context) error {
	meta := snapshot.Meta{
		RegionsCount: s.packCtx.RegionsCount(),
		PaletteLen:   s.packCtx.PaletteLen(),
	}

	stored, err := s.deps.Snapshots.Load(ctx, s.pageID, s.hash, meta)
	if err != nil {
		return fmt.Errorf("failed to restore snapshot: %w", err)
	}

	s.mu.Lock()
	if stored != nil {
		s.snap = stored
	}
	s.undo.Stack = append([]string(nil), s.snap.UndoStackB64...)
	s.undo.Used = s.snap.UndoBudgetUsed
	s.mu.Unlock()

	s.reconcileWithServer(ctx)

	return nil
}

// reconcileWithServer подтягивает серверное состояние и применяет его,
// только если оно строго новее локального
func (s *PageSession) reconcileWithServer(ctx context.Context) {
	token, err := s.deps.Metadata.GetAccessToken(ctx)
	if err != nil {
		s.deps.Logger.Debug("Not authenticated, staying local-only", "error", err)
		return
	}

	state, err := s.deps.API.GetMeState(ctx, token)
	if err != nil {
		s.deps.Logger.Warn("Failed to fetch server state", "error", err)
		return
	}

	// Сессия могла быть закрыта, пока ответ был в полёте:
	// поздний результат отбрасывается, а не применяется
	if s.sctx.Err() != nil {
		return
	}

	if state != nil {
		s.adoptServerState(ctx, state)
	}

	s.pullPageProgress(ctx, token)
}

// adoptServerState применяет серверный me-state по правилу
// "строго новее выигрывает"
func (s *PageSession) adoptServerState(ctx context.Context, state *api.MeStateResponse) {
	s.mu.Lock()
	serverAhead := state.ClientRev > s.snap.ClientRev
	s.mu.Unlock()

	if !serverAhead {
		// Локальное состояние авторитетно, ничего не делаем
		return
	}

	// Race guard: серверный lastPageId применяется, только если пользователь
	// ещё не навигировал локально, пока fetch был в полёте
	localLast, err := s.deps.Snapshots.LoadLastPage(ctx)
	if err != nil {
		s.deps.Logger.Warn("Failed to read local last page", "error", err)
	}
	if localLast == "" && state.LastPageID != "" {
		if err := s.deps.Snapshots.SaveLastPage(ctx, state.LastPageID); err != nil {
			s.deps.Logger.Warn("Failed to adopt server last page", "error", err)
		}
	}

	s.mu.Lock()
	if state.ClientRev > s.snap.ClientRev {
		s.snap.ClientRev = state.ClientRev
	}
	snapCopy := s.snap.Clone()
	s.mu.Unlock()

	// Reconciling write: поднятая ревизия поверх СУЩЕСТВУЮЩЕГО локального
	// прогресса (байты прогресса в me-state с сервера не приходят)
	if err := s.deps.Snapshots.Save(ctx, snapCopy); err != nil {
		s.deps.Logger.Warn("Failed to persist reconciled snapshot", "error", err)
	}

	s.deps.Logger.Info("Adopted server state",
		"server_rev", state.ClientRev,
		"server_last_page", state.LastPageID)
}

// pullPageProgress подтягивает прогресс страницы с page-scoped эндпоинта.
// Применяется только строго более новая ревизия с совпадающим contentHash
// и байтами, проходящими строгие ворота декодирования.
func (s *PageSession) pullPageProgress(ctx context.Context, token string) {
	pp, err := s.deps.API.GetPageProgress(ctx, token, s.pageID)
	if err != nil {
		s.deps.Logger.Warn("Failed to fetch page progress", "error", err)
		return
	}
	if pp == nil || s.sctx.Err() != nil {
		return
	}

	if pp.ContentHash != s.hash {
		s.deps.Logger.Info("Server page progress is for different content, skipping",
			"server_hash", pp.ContentHash)
		return
	}

	packed, err := progress.ParsePacked(pp.ProgressB64, s.packCtx.RegionsCount(), s.packCtx.PaletteLen())
	if err != nil {
		s.deps.Logger.Warn("Server page progress failed strict decode, skipping", "error", err)
		return
	}

	s.mu.Lock()
	if pp.ClientRev <= s.snap.ClientRev {
		s.mu.Unlock()
		return
	}
	s.snap.ClientRev = pp.ClientRev
	s.snap.ProgressB64 = packed.B64()
	snapCopy := s.snap.Clone()
	s.mu.Unlock()

	if err := s.deps.Snapshots.Save(ctx, snapCopy); err != nil {
		s.deps.Logger.Warn("Failed to persist pulled page progress", "error", err)
	}
}

// Open помечает страницу как текущую. Навигация тоже мутация me-state:
// ревизия растет, иначе сервер отвергнет смену lastPageId как устаревшую.
// Повторное открытие уже текущей страницы — no-op.
func (s *PageSession) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	last, err := s.deps.Snapshots.LoadLastPage(ctx)
	if err != nil {
		return fmt.Errorf("failed to read last page: %w", err)
	}
	if last == s.pageID {
		return nil
	}

	return s.commitLocked(ctx)
}

// Fill закрашивает регион цветом палитры.
// Неизвестный регион или цвет — ошибка вызывающего UI, не данные.
// Повторная заливка тем же цветом — no-op без инкремента ревизии.
func (s *PageSession) Fill(ctx context.Context, regionID, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.packCtx.RegionIndex(regionID)
	if !ok {
		return fmt.Errorf("%w: %q", progress.ErrUnknownRegion, regionID)
	}
	colorIdx, ok := s.packCtx.ColorIndex(color)
	if !ok {
		return fmt.Errorf("%w: %q", progress.ErrUnknownColor, color)
	}

	packed, err := progress.ParsePacked(s.snap.ProgressB64, s.snap.RegionsCount, s.snap.PaletteLen)
	if err != nil {
		// In-memory состояние всегда проходит через store, сюда попасть
		// можно только после порчи памяти; деградируем до пустого
		s.deps.Logger.Warn("In-memory progress failed decode, resetting", "error", err)
		packed = progress.EmptyPacked(s.snap.RegionsCount)
	}

	if packed.At(idx) == byte(colorIdx) {
		return nil
	}

	next, err := packed.WithFill(idx, byte(colorIdx))
	if err != nil {
		return fmt.Errorf("failed to apply fill: %w", err)
	}

	s.undo.Push(s.snap.ProgressB64)
	s.snap.ProgressB64 = next.B64()
	s.snap.PaletteIdx = colorIdx

	return s.commitLocked(ctx)
}

// Undo откатывает последнюю мутацию в рамках бюджета.
// Пустой стек или исчерпанный бюджет — no-op без ошибки и без
// инкремента ревизии.
func (s *PageSession) Undo(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.undo.PopBudgeted()
	if !ok {
		return nil
	}

	s.snap.ProgressB64 = prev

	return s.commitLocked(ctx)
}

// ResetProgress очищает закраску страницы, сохраняя бюджет undo:
// начать заново не значит получить свежие undo
func (s *PageSession) ResetProgress(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.undo.ResetKeepBudget()
	s.snap.ProgressB64 = progress.EmptyPacked(s.snap.RegionsCount).B64()

	return s.commitLocked(ctx)
}

// ResetAll полностью стирает локальное состояние страницы:
// запись снапшота, указатель последней страницы, слот outbox и бюджет undo
func (s *PageSession) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()

	if err := s.deps.Snapshots.Delete(ctx, s.pageID, s.hash); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if err := s.deps.Snapshots.ClearLastPage(ctx); err != nil {
		return fmt.Errorf("failed to clear last page: %w", err)
	}
	if err := s.deps.Outbox.ClearPending(ctx); err != nil {
		return fmt.Errorf("failed to clear outbox: %w", err)
	}

	s.undo.ResetAll()
	s.snap = freshSnapshot(s.pageID, s.hash, s.packCtx)

	return nil
}

// commitLocked применяет мутацию: безусловный инкремент clientRev,
// синхронная запись снапшота ДО любого сетевого вызова, затем постановка
// intent в outbox и планирование отложенного push.
// Вызывается строго под s.mu.
func (s *PageSession) commitLocked(ctx context.Context) error {
	s.snap.ClientRev++
	s.snap.UndoStackB64 = append([]string(nil), s.undo.Stack...)
	s.snap.UndoBudgetUsed = s.undo.Used
	s.snap.UpdatedAtMs = time.Now().UnixMilli()

	if err := s.deps.Snapshots.Save(ctx, s.snap); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	if err := s.deps.Snapshots.SaveLastPage(ctx, s.pageID); err != nil {
		return fmt.Errorf("failed to persist last page: %w", err)
	}
	if err := s.deps.Outbox.Enqueue(ctx, s.pageID, s.snap.ClientRev); err != nil {
		return fmt.Errorf("failed to enqueue sync intent: %w", err)
	}

	s.scheduleFlushLocked()

	return nil
}

// scheduleFlushLocked переустанавливает debounce-таймер push.
// Вызывается строго под s.mu.
func (s *PageSession) scheduleFlushLocked() {
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		if err := s.FlushOnce(s.sctx); err != nil {
			s.deps.Logger.Warn("Scheduled flush failed, intent kept for retry", "error", err)
		}
	})
}

// stopTimerLocked останавливает debounce-таймер. Вызывается под s.mu.
func (s *PageSession) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// FlushNow немедленно выполняет push, минуя debounce
// (например, при уходе приложения в foreground/background)
func (s *PageSession) FlushNow(ctx context.Context) error {
	s.mu.Lock()
	s.stopTimerLocked()
	s.mu.Unlock()

	return s.FlushOnce(ctx)
}

// FlushOnce выполняет одну попытку push.
// Читает intent из outbox, а не из памяти: мутация, поставленная в очередь
// до перезагрузки, всё равно будет доставлена. Слот очищается только при
// подтверждённой ревизии >= queued; любая ошибка оставляет слот нетронутым.
// flushMu.TryLock гарантирует не более одного push в полёте.
func (s *PageSession) FlushOnce(ctx context.Context) error {
	if !s.flushMu.TryLock() {
		// Push уже в полёте; intent останется в outbox для следующего
		return nil
	}
	defer s.flushMu.Unlock()

	pending, err := s.deps.Outbox.LoadPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pending intent: %w", err)
	}
	if pending == nil {
		return nil
	}

	token, err := s.deps.Metadata.GetAccessToken(ctx)
	if err != nil {
		s.deps.Logger.Debug("Not authenticated, keeping intent queued", "error", err)
		return nil
	}

	resp, err := s.deps.API.PutMeState(ctx, token, api.MeStateRequest{
		LastPageID: pending.LastPageID,
		ClientRev:  pending.ClientRev,
	})
	if err != nil {
		return fmt.Errorf("push failed: %w", err)
	}

	if resp.ClientRev >= pending.ClientRev {
		if err := s.deps.Outbox.ClearPending(ctx); err != nil {
			return fmt.Errorf("failed to clear acknowledged intent: %w", err)
		}
	}

	s.pushPageProgress(ctx, token)

	return nil
}

// pushPageProgress отправляет прогресс страницы на page-scoped эндпоинт.
// Читает снапшот из хранилища, а не из памяти, по той же причине, что
// и FlushOnce. Ошибки только логируются: прогресс доедет со следующим push.
func (s *PageSession) pushPageProgress(ctx context.Context, token string) {
	meta := snapshot.Meta{
		RegionsCount: s.packCtx.RegionsCount(),
		PaletteLen:   s.packCtx.PaletteLen(),
	}

	snap, err := s.deps.Snapshots.Load(ctx, s.pageID, s.hash, meta)
	if err != nil || snap == nil {
		return
	}

	_, err = s.deps.API.PutPageProgress(ctx, token, s.pageID, api.PageProgressRequest{
		ContentHash:  snap.ContentHash,
		ProgressB64:  snap.ProgressB64,
		ClientRev:    snap.ClientRev,
		RegionsCount: snap.RegionsCount,
		PaletteLen:   snap.PaletteLen,
	})
	if err != nil {
		s.deps.Logger.Warn("Page progress push failed", "error", err)
	}
}

// Close завершает сессию: останавливает таймер и отменяет сессионный
// контекст, чтобы поздние результаты восстановления были отброшены
func (s *PageSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.stopTimerLocked()
	s.cancel()
}

// ClientRev возвращает текущую локальную ревизию
func (s *PageSession) ClientRev() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.ClientRev
}

// UndoLeft возвращает остаток бюджета undo; -1 = безлимит
func (s *PageSession) UndoLeft() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.undo.Left()
}

// Fills возвращает текущую закраску как sparse-карту regionId -> color
func (s *PageSession) Fills() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := progress.DecodeBase64(s.snap.ProgressB64, s.snap.RegionsCount, s.snap.PaletteLen)
	if err != nil {
		return map[string]string{}
	}
	return progress.DecodeSparse(b, s.packCtx)
}

// Snapshot возвращает копию текущего состояния страницы
func (s *PageSession) Snapshot() *models.PageSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}
