package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ivmaks/raskraska/internal/models"
	"github.com/ivmaks/raskraska/internal/progress"
	"github.com/ivmaks/raskraska/internal/server/storage"
	"github.com/ivmaks/raskraska/pkg/api"
)

// PageStorage определяет интерфейс для работы с прогрессом страниц
type PageStorage interface {
	UpsertPageProgress(ctx context.Context, page *models.PageState) (*models.PageState, bool, error)
	GetPageProgress(ctx context.Context, userID int64, pageID string) (*models.PageState, error)
}

// PagesHandler handles per-page progress requests
type PagesHandler struct {
	logger  *slog.Logger
	storage PageStorage
}

// NewPagesHandler creates a new pages handler
func NewPagesHandler(logger *slog.Logger, storage PageStorage) *PagesHandler {
	return &PagesHandler{
		logger:  logger,
		storage: storage,
	}
}

// HandleProgress обрабатывает GET и PUT запросы для
// /api/v1/pages/{pageID}/progress
func (h *PagesHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("User ID not found in context")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	pageID := r.PathValue("pageID")
	if pageID == "" {
		h.sendError(w, "page id is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGetProgress(w, r, userID, pageID)
	case http.MethodPut:
		h.handlePutProgress(w, r, userID, pageID)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// handleGetProgress обрабатывает GET /api/v1/pages/{pageID}/progress
func (h *PagesHandler) handleGetProgress(w http.ResponseWriter, r *http.Request, userID int64, pageID string) {
	ctx := r.Context()

	page, err := h.storage.GetPageProgress(ctx, userID, pageID)
	if err != nil {
		if errors.Is(err, storage.ErrPageNotFound) {
			h.sendError(w, "page progress not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to get page progress", "error", err, "user_id", userID, "page_id", pageID)
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, pageToResponse(page), http.StatusOK)
}

// handlePutProgress обрабатывает PUT /api/v1/pages/{pageID}/progress.
// Байты прогресса проходят те же строгие ворота, что и на клиенте:
// мусор в хранилище не попадает.
func (h *PagesHandler) handlePutProgress(w http.ResponseWriter, r *http.Request, userID int64, pageID string) {
	ctx := r.Context()

	var req api.PageProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode progress request", "error", err)
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.ClientRev <= 0 {
		h.sendError(w, "client_rev must be positive", http.StatusBadRequest)
		return
	}
	if req.RegionsCount <= 0 || req.RegionsCount > progress.MaxRegions {
		h.sendError(w, "regions_count is out of range", http.StatusBadRequest)
		return
	}
	if req.PaletteLen <= 0 || req.PaletteLen > progress.MaxPaletteLen {
		h.sendError(w, "palette_len is out of range", http.StatusBadRequest)
		return
	}
	if _, err := progress.DecodeBase64(req.ProgressB64, req.RegionsCount, req.PaletteLen); err != nil {
		h.logger.Warn("Rejected malformed progress payload",
			"error", err, "user_id", userID, "page_id", pageID)
		h.sendError(w, "malformed progress payload", http.StatusBadRequest)
		return
	}

	stored, applied, err := h.storage.UpsertPageProgress(ctx, &models.PageState{
		UserID:       userID,
		PageID:       pageID,
		ContentHash:  req.ContentHash,
		ProgressB64:  req.ProgressB64,
		RegionsCount: req.RegionsCount,
		PaletteLen:   req.PaletteLen,
		ClientRev:    req.ClientRev,
		UpdatedAt:    time.Now(),
	})
	if err != nil {
		h.logger.Error("Failed to upsert page progress", "error", err, "user_id", userID, "page_id", pageID)
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("Page progress push",
		"user_id", userID,
		"page_id", pageID,
		"client_rev", req.ClientRev,
		"applied", applied,
		"stored_rev", stored.ClientRev)

	h.sendJSON(w, pageToResponse(stored), http.StatusOK)
}

func pageToResponse(page *models.PageState) api.PageProgressResponse {
	return api.PageProgressResponse{
		UpdatedAt:    page.UpdatedAt,
		PageID:       page.PageID,
		ContentHash:  page.ContentHash,
		ProgressB64:  page.ProgressB64,
		ClientRev:    page.ClientRev,
		RegionsCount: page.RegionsCount,
		PaletteLen:   page.PaletteLen,
	}
}

// sendJSON отправляет JSON ответ
func (h *PagesHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h *PagesHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
