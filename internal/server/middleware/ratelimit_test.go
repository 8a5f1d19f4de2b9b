package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateLimitTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRateLimiter_AllowWithinLimit(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute, rateLimitTestLogger())
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("203.0.113.7"), "request %d should be allowed", i+1)
	}
}

func TestRateLimiter_BlocksWhenExhausted(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute, rateLimitTestLogger())
	defer rl.Stop()

	assert.True(t, rl.Allow("203.0.113.7"))
	assert.True(t, rl.Allow("203.0.113.7"))
	assert.False(t, rl.Allow("203.0.113.7"), "third request in window should be blocked")
}

func TestRateLimiter_RefillsAfterWindow(t *testing.T) {
	rl := NewRateLimiter(1, 30*time.Millisecond, rateLimitTestLogger())
	defer rl.Stop()

	require.True(t, rl.Allow("203.0.113.7"))
	require.False(t, rl.Allow("203.0.113.7"))

	time.Sleep(40 * time.Millisecond)

	assert.True(t, rl.Allow("203.0.113.7"), "bucket should refill after the window passes")
}

func TestRateLimiter_PerClientIsolation(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, rateLimitTestLogger())
	defer rl.Stop()

	require.True(t, rl.Allow("203.0.113.7"))
	require.False(t, rl.Allow("203.0.113.7"))

	// Другой клиент не делит bucket с исчерпавшим лимит
	assert.True(t, rl.Allow("198.51.100.3"))
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, rateLimitTestLogger())
	defer rl.Stop()

	require.True(t, rl.Allow("203.0.113.7"))
	require.False(t, rl.Allow("203.0.113.7"))

	// Спустя два окна молчания запись клиента выкидывается,
	// и следующий запрос начинает со свежего bucket'а
	rl.evictIdle(time.Now().Add(3 * time.Minute))

	assert.True(t, rl.Allow("203.0.113.7"))
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimitMiddleware(2, time.Minute, rateLimitTestLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	doGet := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/me/state", nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, doGet("203.0.113.7:1000").Code)
	assert.Equal(t, http.StatusOK, doGet("203.0.113.7:1000").Code)

	w := doGet("203.0.113.7:1000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "too many requests")

	// Сосед по серверу не страдает от чужого лимита
	assert.Equal(t, http.StatusOK, doGet("198.51.100.3:1000").Code)
}

func TestRateLimitPerRoute_AuthIsStricter(t *testing.T) {
	limits := []RouteLimit{
		{Path: "/api/v1/auth/telegram", Rate: 2, Window: 30 * time.Second},
	}
	handler := RateLimitPerRoute(limits, 100, time.Minute, rateLimitTestLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	do := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = "203.0.113.7:1000"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusOK, do("/api/v1/auth/telegram").Code)
	require.Equal(t, http.StatusOK, do("/api/v1/auth/telegram").Code)

	w := do("/api/v1/auth/telegram")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))

	// Исчерпанный auth-bucket не трогает остальные роуты того же клиента
	assert.Equal(t, http.StatusOK, do("/api/v1/me/state").Code)
	assert.Equal(t, http.StatusOK, do("/webhook/12345:token").Code)
}

func TestRateLimitPerRoute_UnlistedPathUsesDefault(t *testing.T) {
	limits := []RouteLimit{
		{Path: "/api/v1/auth/telegram", Rate: 100, Window: time.Minute},
	}
	handler := RateLimitPerRoute(limits, 1, time.Minute, rateLimitTestLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	do := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "203.0.113.7:1000"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusOK, do("/api/v1/pages/fox/progress").Code)

	// Дефолтный bucket общий для всех неперечисленных путей
	assert.Equal(t, http.StatusTooManyRequests, do("/api/v1/me/state").Code)

	// Auth живет в своем bucket'е и не затронут
	assert.Equal(t, http.StatusOK, do("/api/v1/auth/telegram").Code)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name          string
		xForwardedFor string
		xRealIP       string
		remoteAddr    string
		expected      string
	}{
		{
			name:       "RemoteAddr only",
			remoteAddr: "203.0.113.7:1000",
			expected:   "203.0.113.7:1000",
		},
		{
			name:          "X-Forwarded-For single",
			xForwardedFor: "198.51.100.3",
			remoteAddr:    "10.0.0.1:1000",
			expected:      "198.51.100.3",
		},
		{
			name:          "X-Forwarded-For list takes first hop",
			xForwardedFor: "198.51.100.3, 10.0.0.2, 10.0.0.1",
			remoteAddr:    "10.0.0.1:1000",
			expected:      "198.51.100.3",
		},
		{
			name:       "X-Real-IP fallback",
			xRealIP:    "198.51.100.3",
			remoteAddr: "10.0.0.1:1000",
			expected:   "198.51.100.3",
		},
		{
			name:          "X-Forwarded-For wins over X-Real-IP",
			xForwardedFor: "198.51.100.3",
			xRealIP:       "192.0.2.9",
			remoteAddr:    "10.0.0.1:1000",
			expected:      "198.51.100.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/me/state", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xForwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tt.xForwardedFor)
			}
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}

			assert.Equal(t, tt.expected, clientIP(req))
		})
	}
}
