package api

import "time"

// MeStateRequest представляет PUT /api/v1/me/state.
// Сервер применяет запись только если client_rev строго больше сохранённой
// (идемпотентный upsert): повторная доставка того же intent безопасна.
type MeStateRequest struct {
	LastPageID string `json:"last_page_id"` // последняя открытая страница
	ClientRev  int64  `json:"client_rev"`   // клиентская ревизия
}

// MeStateResponse представляет сохранённое (post-write) состояние me-state.
// Ответ всегда отражает то, что лежит в базе: по нему клиент видит,
// что его устаревшая запись была проигнорирована.
type MeStateResponse struct {
	UpdatedAt  time.Time `json:"updated_at"`   // время последнего применённого апдейта
	LastPageID string    `json:"last_page_id"` // последняя открытая страница
	ClientRev  int64     `json:"client_rev"`   // сохранённая клиентская ревизия
}

// PageProgressRequest представляет PUT /api/v1/pages/{pageID}/progress.
// То же правило "большая ревизия выигрывает", ключ (userID, pageID).
type PageProgressRequest struct {
	ContentHash  string `json:"content_hash"`  // хеш разметки, для которой валиден прогресс
	ProgressB64  string `json:"progress_b64"`  // base64 packed progress
	ClientRev    int64  `json:"client_rev"`    // клиентская ревизия
	RegionsCount int    `json:"regions_count"` // количество регионов
	PaletteLen   int    `json:"palette_len"`   // размер палитры
}

// PageProgressResponse представляет сохранённый (post-write) прогресс страницы
type PageProgressResponse struct {
	UpdatedAt    time.Time `json:"updated_at"`    // время последнего применённого апдейта
	PageID       string    `json:"page_id"`       // идентификатор страницы
	ContentHash  string    `json:"content_hash"`  // хеш разметки
	ProgressB64  string    `json:"progress_b64"`  // base64 packed progress
	ClientRev    int64     `json:"client_rev"`    // сохранённая клиентская ревизия
	RegionsCount int       `json:"regions_count"` // количество регионов
	PaletteLen   int       `json:"palette_len"`   // размер палитры
}
