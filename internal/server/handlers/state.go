package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ivmaks/raskraska/internal/models"
	"github.com/ivmaks/raskraska/internal/server/storage"
	"github.com/ivmaks/raskraska/pkg/api"
)

// StateStorage определяет интерфейс для работы с me-state
type StateStorage interface {
	UpsertUserState(ctx context.Context, state *models.UserState) (*models.UserState, bool, error)
	GetUserState(ctx context.Context, userID int64) (*models.UserState, error)
}

// StateHandler handles per-user navigation state requests
type StateHandler struct {
	logger  *slog.Logger
	storage StateStorage
}

// NewStateHandler creates a new state handler
func NewStateHandler(logger *slog.Logger, storage StateStorage) *StateHandler {
	return &StateHandler{
		logger:  logger,
		storage: storage,
	}
}

// HandleState обрабатывает GET и PUT запросы для /api/v1/me/state
func (h *StateHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Получаем user_id из контекста (установлен AuthMiddleware)
	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("User ID not found in context")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGetState(w, r, userID)
	case http.MethodPut:
		h.handlePutState(w, r, userID)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// handleGetState обрабатывает GET /api/v1/me/state.
// 404 означает "пользователь еще ни разу не синхронизировался",
// клиент остается на чисто локальном состоянии.
func (h *StateHandler) handleGetState(w http.ResponseWriter, r *http.Request, userID int64) {
	ctx := r.Context()

	state, err := h.storage.GetUserState(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrStateNotFound) {
			h.sendError(w, "state not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to get user state", "error", err, "user_id", userID)
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, stateToResponse(state), http.StatusOK)
}

// handlePutState обрабатывает PUT /api/v1/me/state.
// Ответ всегда отдает сохраненное состояние: по нему клиент видит, была ли
// его запись применена или проиграла более новой.
func (h *StateHandler) handlePutState(w http.ResponseWriter, r *http.Request, userID int64) {
	ctx := r.Context()

	var req api.MeStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode state request", "error", err)
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Ревизия первой мутации 1, ноль или минус это всегда ошибка клиента
	if req.ClientRev <= 0 {
		h.sendError(w, "client_rev must be positive", http.StatusBadRequest)
		return
	}

	stored, applied, err := h.storage.UpsertUserState(ctx, &models.UserState{
		UserID:     userID,
		LastPageID: req.LastPageID,
		ClientRev:  req.ClientRev,
		UpdatedAt:  time.Now(),
	})
	if err != nil {
		h.logger.Error("Failed to upsert user state", "error", err, "user_id", userID)
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("State push",
		"user_id", userID,
		"client_rev", req.ClientRev,
		"applied", applied,
		"stored_rev", stored.ClientRev)

	h.sendJSON(w, stateToResponse(stored), http.StatusOK)
}

func stateToResponse(state *models.UserState) api.MeStateResponse {
	return api.MeStateResponse{
		UpdatedAt:  state.UpdatedAt,
		LastPageID: state.LastPageID,
		ClientRev:  state.ClientRev,
	}
}

// sendJSON отправляет JSON ответ
func (h *StateHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h *StateHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
