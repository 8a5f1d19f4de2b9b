package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIBase = "https://api.telegram.org"

// Update входящее обновление от Bot API webhook.
// Разбираем только сообщения, остальные виды обновлений игнорируются.
type Update struct {
	Message  *Message `json:"message"`
	UpdateID int64    `json:"update_id"`
}

// Message сообщение пользователя боту
type Message struct {
	From *InitDataUser `json:"from"`
	Chat Chat          `json:"chat"`
	Text string        `json:"text"`
}

// Chat чат, из которого пришло сообщение
type Chat struct {
	ID int64 `json:"id"`
}

// Bot минимальный клиент Bot API: единственное, что нужно серверу,
// это отвечать на /start кнопкой, открывающей Mini App
type Bot struct {
	httpClient *http.Client
	apiBase    string
	token      string
}

// NewBot creates a Bot API client
func NewBot(token string) *Bot {
	return &Bot{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiBase:    defaultAPIBase,
		token:      token,
	}
}

// NewBotWithBase creates a Bot API client with a custom API base URL,
// used in tests
func NewBotWithBase(token, apiBase string) *Bot {
	bot := NewBot(token)
	bot.apiBase = apiBase
	return bot
}

// sendMessageRequest тело метода sendMessage
type sendMessageRequest struct {
	ReplyMarkup *inlineKeyboardMarkup `json:"reply_markup,omitempty"`
	Text        string                `json:"text"`
	ChatID      int64                 `json:"chat_id"`
}

type inlineKeyboardMarkup struct {
	InlineKeyboard [][]inlineKeyboardButton `json:"inline_keyboard"`
}

type inlineKeyboardButton struct {
	WebApp *webAppInfo `json:"web_app,omitempty"`
	Text   string      `json:"text"`
}

type webAppInfo struct {
	URL string `json:"url"`
}

// apiResponse общий конверт ответа Bot API
type apiResponse struct {
	Description string `json:"description"`
	OK          bool   `json:"ok"`
}

// SendMessage отправляет текстовое сообщение в чат
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) error {
	return b.send(ctx, sendMessageRequest{ChatID: chatID, Text: text})
}

// SendWebAppButton отправляет сообщение с inline-кнопкой,
// открывающей Mini App
func (b *Bot) SendWebAppButton(ctx context.Context, chatID int64, text, buttonText, webAppURL string) error {
	return b.send(ctx, sendMessageRequest{
		ChatID: chatID,
		Text:   text,
		ReplyMarkup: &inlineKeyboardMarkup{
			InlineKeyboard: [][]inlineKeyboardButton{
				{{Text: buttonText, WebApp: &webAppInfo{URL: webAppURL}}},
			},
		},
	})
}

func (b *Bot) send(ctx context.Context, req sendMessageRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", b.apiBase, b.token)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call bot api: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("failed to decode bot api response: %w", err)
	}
	if !apiResp.OK {
		return fmt.Errorf("bot api error: %s", apiResp.Description)
	}

	return nil
}
