package models

import "time"

// UserState представляет серверную запись "последняя открытая страница"
// пользователя. Байты прогресса здесь не хранятся: кросс-девайсно
// синхронизируются только lastPageId и clientRev, выигрывает большая ревизия.
type UserState struct {
	UpdatedAt  time.Time `json:"updated_at"`   // UpdatedAt время последнего применённого апдейта
	LastPageID string    `json:"last_page_id"` // LastPageID последняя открытая страница
	UserID     int64     `json:"user_id"`      // UserID Telegram ID пользователя
	ClientRev  int64     `json:"client_rev"`   // ClientRev последняя применённая клиентская ревизия
}

// PageState представляет серверную запись прогресса одной страницы.
// Ключ (UserID, PageID); применяется то же правило "большая ревизия выигрывает".
type PageState struct {
	UpdatedAt    time.Time `json:"updated_at"`    // UpdatedAt время последнего применённого апдейта
	PageID       string    `json:"page_id"`       // PageID идентификатор страницы
	ContentHash  string    `json:"content_hash"`  // ContentHash хеш разметки, для которой валиден прогресс
	ProgressB64  string    `json:"progress_b64"`  // ProgressB64 base64 packed progress
	UserID       int64     `json:"user_id"`       // UserID Telegram ID пользователя
	ClientRev    int64     `json:"client_rev"`    // ClientRev последняя применённая клиентская ревизия
	RegionsCount int       `json:"regions_count"` // RegionsCount количество регионов на момент записи
	PaletteLen   int       `json:"palette_len"`   // PaletteLen размер палитры на момент записи
}

// TelegramUser представляет пользователя Mini App, увиденного сервером.
type TelegramUser struct {
	FirstSeen    time.Time `json:"first_seen"`    // FirstSeen первый вход
	LastSeen     time.Time `json:"last_seen"`     // LastSeen последний вход
	Username     string    `json:"username"`      // Username Telegram username (может быть пустым)
	FirstName    string    `json:"first_name"`    // FirstName имя из профиля
	LanguageCode string    `json:"language_code"` // LanguageCode язык клиента Telegram
	ID           int64     `json:"id"`            // ID Telegram ID
}
