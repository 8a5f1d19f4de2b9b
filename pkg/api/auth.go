package api

// TelegramAuthRequest представляет запрос на обмен Telegram initData на токен
type TelegramAuthRequest struct {
	InitData string `json:"init_data"` // строка Telegram.WebApp.initData как есть
}

// TokenResponse представляет ответ с токеном доступа
type TokenResponse struct {
	AccessToken string `json:"access_token"` // JWT access token
	ExpiresIn   int64  `json:"expires_in"`   // время жизни access token в секундах
	UserID      int64  `json:"user_id"`      // Telegram ID пользователя
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
