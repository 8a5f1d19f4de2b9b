package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ivmaks/raskraska/internal/models"
	"github.com/ivmaks/raskraska/internal/server/storage"
	"github.com/ivmaks/raskraska/internal/server/telegram"
	"github.com/ivmaks/raskraska/pkg/api"
)

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger         *slog.Logger
	userStorage    storage.UserStorage
	jwtConfig      JWTConfig
	botToken       string
	initDataMaxAge time.Duration
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, jwtConfig JWTConfig, botToken string, initDataMaxAge time.Duration) *AuthHandler {
	return &AuthHandler{
		logger:         logger,
		userStorage:    userStorage,
		jwtConfig:      jwtConfig,
		botToken:       botToken,
		initDataMaxAge: initDataMaxAge,
	}
}

// AuthTelegram обрабатывает POST /api/v1/auth/telegram
// Обменивает подписанную Telegram initData на access token
func (h *AuthHandler) AuthTelegram(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Парсим request body
	var req api.TelegramAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode auth request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.InitData == "" {
		h.sendError(w, "init_data is required", http.StatusBadRequest)
		return
	}

	// Проверяем подпись initData токеном бота
	parsed, err := telegram.ValidateInitData(req.InitData, h.botToken, h.initDataMaxAge)
	if err != nil {
		switch {
		case errors.Is(err, telegram.ErrInitDataExpired):
			h.logger.WarnContext(ctx, "init data expired")
			h.sendError(w, "init data expired, restart the app", http.StatusUnauthorized)
		case errors.Is(err, telegram.ErrInitDataSignature):
			h.logger.WarnContext(ctx, "init data signature mismatch")
			h.sendError(w, "invalid init data", http.StatusUnauthorized)
		default:
			h.logger.WarnContext(ctx, "malformed init data", slog.Any("error", err))
			h.sendError(w, "invalid init data", http.StatusBadRequest)
		}
		return
	}

	// Создаем или обновляем профиль пользователя
	now := time.Now()
	user := &models.TelegramUser{
		ID:           parsed.User.ID,
		Username:     parsed.User.Username,
		FirstName:    parsed.User.FirstName,
		LanguageCode: parsed.User.LanguageCode,
		FirstSeen:    now,
		LastSeen:     now,
	}
	if err := h.userStorage.UpsertUser(ctx, user); err != nil {
		h.logger.ErrorContext(ctx, "failed to upsert user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Выдаем access token
	accessToken, expiresIn, err := GenerateAccessToken(h.jwtConfig, parsed.User.ID, parsed.User.Username)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user authenticated",
		slog.Int64("user_id", parsed.User.ID),
		slog.String("username", parsed.User.Username))

	resp := api.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   expiresIn,
		UserID:      parsed.User.ID,
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// sendJSON отправляет JSON ответ
func (h *AuthHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h *AuthHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
