package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ivmaks/raskraska/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI определяет интерфейс HTTP клиента сервера синхронизации
type ClientAPI interface {
	// AuthTelegram обменивает Telegram initData на access token
	AuthTelegram(ctx context.Context, initData string) (*api.TokenResponse, error)

	// GetMeState возвращает me-state пользователя или nil, если записи нет
	GetMeState(ctx context.Context, accessToken string) (*api.MeStateResponse, error)

	// PutMeState отправляет идемпотентный upsert me-state.
	// Ответ всегда отражает сохранённое (post-write) состояние.
	PutMeState(ctx context.Context, accessToken string, req api.MeStateRequest) (*api.MeStateResponse, error)

	// GetPageProgress возвращает прогресс страницы или nil, если записи нет
	GetPageProgress(ctx context.Context, accessToken, pageID string) (*api.PageProgressResponse, error)

	// PutPageProgress отправляет идемпотентный upsert прогресса страницы
	PutPageProgress(ctx context.Context, accessToken, pageID string, req api.PageProgressRequest) (*api.PageProgressResponse, error)
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// AuthTelegram обменивает Telegram initData на access token
func (c *Client) AuthTelegram(ctx context.Context, initData string) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	req := api.TelegramAuthRequest{InitData: initData}
	found, err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/telegram", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("telegram auth request failed: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("telegram auth request failed: not found")
	}
	return &resp, nil
}

// GetMeState возвращает me-state пользователя.
// Возвращает (nil, nil), если сервер ещё не видел этого пользователя.
func (c *Client) GetMeState(ctx context.Context, accessToken string) (*api.MeStateResponse, error) {
	var resp api.MeStateResponse
	found, err := c.doRequest(ctx, http.MethodGet, "/api/v1/me/state", accessToken, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("get me-state request failed: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &resp, nil
}

// PutMeState отправляет идемпотентный upsert me-state
func (c *Client) PutMeState(ctx context.Context, accessToken string, req api.MeStateRequest) (*api.MeStateResponse, error) {
	var resp api.MeStateResponse
	found, err := c.doRequest(ctx, http.MethodPut, "/api/v1/me/state", accessToken, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("put me-state request failed: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("put me-state request failed: not found")
	}
	return &resp, nil
}

// GetPageProgress возвращает прогресс страницы.
// Возвращает (nil, nil), если записи нет.
func (c *Client) GetPageProgress(ctx context.Context, accessToken, pageID string) (*api.PageProgressResponse, error) {
	var resp api.PageProgressResponse
	path := fmt.Sprintf("/api/v1/pages/%s/progress", url.PathEscape(pageID))
	found, err := c.doRequest(ctx, http.MethodGet, path, accessToken, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("get page progress request failed: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &resp, nil
}

// PutPageProgress отправляет идемпотентный upsert прогресса страницы
func (c *Client) PutPageProgress(ctx context.Context, accessToken, pageID string, req api.PageProgressRequest) (*api.PageProgressResponse, error) {
	var resp api.PageProgressResponse
	path := fmt.Sprintf("/api/v1/pages/%s/progress", url.PathEscape(pageID))
	found, err := c.doRequest(ctx, http.MethodPut, path, accessToken, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("put page progress request failed: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("put page progress request failed: not found")
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос.
// Возвращает found=false на 404: для state-эндпоинтов это легитимный
// ответ "записи нет", а не ошибка.
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body, result interface{}) (bool, error) {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return false, fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return false, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return false, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return true, nil
}
