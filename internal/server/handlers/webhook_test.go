package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivmaks/raskraska/internal/models"
	"github.com/ivmaks/raskraska/internal/server/storage"
)

// mockBotSender записывает отправленные ботом ответы
type mockBotSender struct {
	messages  []string
	buttons   []string
	chatIDs   []int64
	sendError error
}

func (m *mockBotSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	m.messages = append(m.messages, text)
	m.chatIDs = append(m.chatIDs, chatID)
	return m.sendError
}

func (m *mockBotSender) SendWebAppButton(ctx context.Context, chatID int64, text, buttonText, webAppURL string) error {
	m.buttons = append(m.buttons, webAppURL)
	m.chatIDs = append(m.chatIDs, chatID)
	return m.sendError
}

func postUpdate(t *testing.T, handler *WebhookHandler, body, secretToken string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader([]byte(body)))
	if secretToken != "" {
		req.Header.Set(secretTokenHeader, secretToken)
	}
	w := httptest.NewRecorder()
	handler.HandleUpdate(w, req)
	return w
}

func TestWebhookHandler_StartCommand(t *testing.T) {
	bot := &mockBotSender{}
	handler := NewWebhookHandler(setupTestLogger(), bot, nil, "https://example.com/app", "")

	w := postUpdate(t, handler,
		`{"update_id":1,"message":{"chat":{"id":42},"text":"/start"}}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, bot.buttons, 1)
	assert.Equal(t, "https://example.com/app", bot.buttons[0])
	assert.Equal(t, int64(42), bot.chatIDs[0])
}

func TestWebhookHandler_StartWithBotMention(t *testing.T) {
	bot := &mockBotSender{}
	handler := NewWebhookHandler(setupTestLogger(), bot, nil, "https://example.com/app", "")

	w := postUpdate(t, handler,
		`{"update_id":1,"message":{"chat":{"id":42},"text":"/start@raskraska_bot deep-link"}}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, bot.buttons, 1)
}

func TestWebhookHandler_HelpCommand(t *testing.T) {
	bot := &mockBotSender{}
	handler := NewWebhookHandler(setupTestLogger(), bot, nil, "https://example.com/app", "")

	w := postUpdate(t, handler,
		`{"update_id":2,"message":{"chat":{"id":42},"text":"/help"}}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, bot.messages, 1)
	assert.Contains(t, bot.messages[0], "coloring")
}

func TestWebhookHandler_UnknownTextIgnored(t *testing.T) {
	bot := &mockBotSender{}
	handler := NewWebhookHandler(setupTestLogger(), bot, nil, "https://example.com/app", "")

	w := postUpdate(t, handler,
		`{"update_id":3,"message":{"chat":{"id":42},"text":"hello there"}}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, bot.messages)
	assert.Empty(t, bot.buttons)
}

func TestWebhookHandler_NonMessageUpdate(t *testing.T) {
	bot := &mockBotSender{}
	handler := NewWebhookHandler(setupTestLogger(), bot, nil, "https://example.com/app", "")

	w := postUpdate(t, handler, `{"update_id":4}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookHandler_SecretTokenMismatch(t *testing.T) {
	bot := &mockBotSender{}
	handler := NewWebhookHandler(setupTestLogger(), bot, nil, "https://example.com/app", "expected-secret")

	w := postUpdate(t, handler,
		`{"update_id":5,"message":{"chat":{"id":42},"text":"/start"}}`, "wrong-secret")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, bot.buttons)
}

func TestWebhookHandler_SecretTokenMatch(t *testing.T) {
	bot := &mockBotSender{}
	handler := NewWebhookHandler(setupTestLogger(), bot, nil, "https://example.com/app", "expected-secret")

	w := postUpdate(t, handler,
		`{"update_id":6,"message":{"chat":{"id":42},"text":"/start"}}`, "expected-secret")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, bot.buttons, 1)
}

func TestWebhookHandler_InvalidBody(t *testing.T) {
	bot := &mockBotSender{}
	handler := NewWebhookHandler(setupTestLogger(), bot, nil, "https://example.com/app", "")

	w := postUpdate(t, handler, "{broken", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookHandler_SendFailureStill200(t *testing.T) {
	bot := &mockBotSender{sendError: assert.AnError}
	handler := NewWebhookHandler(setupTestLogger(), bot, nil, "https://example.com/app", "")

	// Bot API ретраит не-200 ответы, ошибка отправки не должна вызывать ретрай
	w := postUpdate(t, handler,
		`{"update_id":7,"message":{"chat":{"id":42},"text":"/start"}}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
}

// mockStateReader отдает заранее заданное состояние пользователя
type mockStateReader struct {
	state *models.UserState
	err   error
}

func (m *mockStateReader) GetUserState(ctx context.Context, userID int64) (*models.UserState, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.state, nil
}

func TestWebhookHandler_StartDeepLinksLastPage(t *testing.T) {
	bot := &mockBotSender{}
	states := &mockStateReader{state: &models.UserState{UserID: 42, LastPageID: "fox", ClientRev: 3}}
	handler := NewWebhookHandler(setupTestLogger(), bot, states, "https://example.com/app", "")

	w := postUpdate(t, handler,
		`{"update_id":8,"message":{"from":{"id":42},"chat":{"id":42},"text":"/start"}}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, bot.buttons, 1)
	assert.Equal(t, "https://example.com/app#page=fox", bot.buttons[0])
}

func TestWebhookHandler_StartWithoutStoredState(t *testing.T) {
	bot := &mockBotSender{}
	states := &mockStateReader{err: storage.ErrStateNotFound}
	handler := NewWebhookHandler(setupTestLogger(), bot, states, "https://example.com/app", "")

	w := postUpdate(t, handler,
		`{"update_id":9,"message":{"from":{"id":42},"chat":{"id":42},"text":"/start"}}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, bot.buttons, 1)
	assert.Equal(t, "https://example.com/app", bot.buttons[0])
}

func TestWebhookHandler_StartStateErrorFallsBack(t *testing.T) {
	bot := &mockBotSender{}
	states := &mockStateReader{err: assert.AnError}
	handler := NewWebhookHandler(setupTestLogger(), bot, states, "https://example.com/app", "")

	w := postUpdate(t, handler,
		`{"update_id":10,"message":{"from":{"id":42},"chat":{"id":42},"text":"/start"}}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, bot.buttons, 1)
	assert.Equal(t, "https://example.com/app", bot.buttons[0])
}
