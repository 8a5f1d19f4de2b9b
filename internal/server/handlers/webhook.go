package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/ivmaks/raskraska/internal/models"
	"github.com/ivmaks/raskraska/internal/server/storage"
	"github.com/ivmaks/raskraska/internal/server/telegram"
)

// secretTokenHeader заголовок, которым Bot API подписывает webhook-запросы
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// BotSender отправляет ответы бота
type BotSender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendWebAppButton(ctx context.Context, chatID int64, text, buttonText, webAppURL string) error
}

// StateReader читает состояние пользователя для персонализации ответов бота
type StateReader interface {
	GetUserState(ctx context.Context, userID int64) (*models.UserState, error)
}

// WebhookHandler обрабатывает webhook-обновления от Bot API
type WebhookHandler struct {
	logger      *slog.Logger
	bot         BotSender
	states      StateReader
	webAppURL   string
	secretToken string
}

// NewWebhookHandler создает новый handler для бот-вебхука.
// states может быть nil, тогда /start отвечает без deep-link на последнюю страницу.
func NewWebhookHandler(logger *slog.Logger, bot BotSender, states StateReader, webAppURL, secretToken string) *WebhookHandler {
	return &WebhookHandler{
		logger:      logger,
		bot:         bot,
		states:      states,
		webAppURL:   webAppURL,
		secretToken: secretToken,
	}
}

// HandleUpdate обрабатывает POST /webhook.
// Bot API ретраит не-200 ответы, поэтому любое обработанное обновление
// подтверждается 200, даже если ответить пользователю не удалось.
func (h *WebhookHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.secretToken != "" && r.Header.Get(secretTokenHeader) != h.secretToken {
		h.logger.Warn("Webhook secret token mismatch", "remote_addr", r.RemoteAddr)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.logger.Warn("Failed to decode webhook update", "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if update.Message != nil {
		h.handleMessage(ctx, update.Message)
	}

	w.WriteHeader(http.StatusOK)
}

func (h *WebhookHandler) handleMessage(ctx context.Context, msg *telegram.Message) {
	command := msg.Text
	if idx := strings.Index(command, " "); idx >= 0 {
		command = command[:idx]
	}
	// Команды в группах приходят как /start@botname
	if idx := strings.Index(command, "@"); idx >= 0 {
		command = command[:idx]
	}

	var err error
	switch command {
	case "/start":
		text := "Welcome! Tap the button to start coloring."
		link := h.webAppURL
		// Вернувшемуся пользователю даем deep-link на последнюю страницу
		if msg.From != nil {
			if pageID := h.lastPageID(ctx, msg.From.ID); pageID != "" {
				text = "Welcome back! Your coloring is waiting for you."
				link = h.webAppURL + "#page=" + url.PathEscape(pageID)
			}
		}
		err = h.bot.SendWebAppButton(ctx, msg.Chat.ID, text,
			"🎨 Open coloring book", link)
	case "/help":
		err = h.bot.SendMessage(ctx, msg.Chat.ID,
			"This bot hosts a coloring book mini app. Send /start and tap the button. Your progress is saved on the device and synced across your devices.")
	default:
		// Прочие сообщения молча игнорируем
		return
	}

	if err != nil {
		h.logger.Error("Failed to send bot reply",
			"error", err,
			"chat_id", msg.Chat.ID,
			"command", command)
	}
}

// lastPageID возвращает последнюю открытую страницу пользователя,
// пустую строку при отсутствии состояния или любой ошибке
func (h *WebhookHandler) lastPageID(ctx context.Context, userID int64) string {
	if h.states == nil {
		return ""
	}

	state, err := h.states.GetUserState(ctx, userID)
	if err != nil {
		if !errors.Is(err, storage.ErrStateNotFound) {
			h.logger.Error("Failed to load user state for greeting",
				"error", err, "user_id", userID)
		}
		return ""
	}

	return state.LastPageID
}
