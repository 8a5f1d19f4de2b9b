package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Лимиты по умолчанию для этого сервера. Auth-роут дергается при каждом
// запуске Mini App и от него же приходят ретраи фронтенда, поэтому
// он получает собственный, более жесткий bucket.
const (
	DefaultRateLimit  = 120
	DefaultRateWindow = time.Minute
	AuthRateLimit     = 10
	AuthRateWindow    = time.Minute
)

// RateLimiter ограничивает частоту запросов по ключу (IP клиента)
// простым token bucket: окно window выдает rate токенов, запрос тратит
// один токен, пустой bucket означает отказ до следующего пополнения.
type RateLimiter struct {
	visitors map[string]*visitor
	logger   *slog.Logger
	stopC    chan struct{}
	rate     int
	window   time.Duration
	mu       sync.Mutex
}

// visitor состояние bucket'а одного клиента
type visitor struct {
	lastRefill time.Time
	lastSeen   time.Time
	tokens     int
}

// NewRateLimiter creates a token bucket limiter allowing rate requests per window
func NewRateLimiter(rate int, window time.Duration, logger *slog.Logger) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		logger:   logger,
		stopC:    make(chan struct{}),
		rate:     rate,
		window:   window,
	}

	go rl.evictLoop()

	return rl
}

// evictLoop периодически выкидывает клиентов, молчащих дольше двух окон
func (rl *RateLimiter) evictLoop() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictIdle(time.Now())
		case <-rl.stopC:
			return
		}
	}
}

// evictIdle удаляет записи клиентов, не появлявшихся два окна подряд
func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.window * 2)
	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
		}
	}
}

// Stop останавливает eviction goroutine
func (rl *RateLimiter) Stop() {
	close(rl.stopC)
}

// Allow reports whether one more request from key fits into the current window
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{tokens: rl.rate, lastRefill: now}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	if now.Sub(v.lastRefill) >= rl.window {
		v.tokens = rl.rate
		v.lastRefill = now
	}

	if v.tokens == 0 {
		return false
	}
	v.tokens--

	return true
}

// rejectRateLimited отвечает 429 с подсказкой, когда можно ретраить
func rejectRateLimited(w http.ResponseWriter, window time.Duration) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"error":"too many requests"}`))
}

// RateLimitMiddleware создает middleware с единым лимитом на IP для всех путей
func RateLimitMiddleware(rate int, window time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(rate, window, logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			if !limiter.Allow(key) {
				logger.Warn("Rate limit exceeded",
					"ip", key,
					"method", r.Method,
					"path", r.URL.Path,
				)
				rejectRateLimited(w, window)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RouteLimit отдельный лимит для конкретного пути
type RouteLimit struct {
	Path   string
	Rate   int
	Window time.Duration
}

// routeLimiter пара limiter + окно для Retry-After
type routeLimiter struct {
	limiter *RateLimiter
	window  time.Duration
}

// RateLimitPerRoute создает middleware с отдельными bucket'ами для
// перечисленных путей и общим лимитом для всех остальных
func RateLimitPerRoute(limits []RouteLimit, defaultRate int, defaultWindow time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	limiters := make(map[string]routeLimiter, len(limits))
	for _, limit := range limits {
		limiters[limit.Path] = routeLimiter{
			limiter: NewRateLimiter(limit.Rate, limit.Window, logger),
			window:  limit.Window,
		}
	}

	fallback := routeLimiter{
		limiter: NewRateLimiter(defaultRate, defaultWindow, logger),
		window:  defaultWindow,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rl, ok := limiters[r.URL.Path]
			if !ok {
				rl = fallback
			}

			key := clientIP(r)
			if !rl.limiter.Allow(key) {
				logger.Warn("Rate limit exceeded",
					"ip", key,
					"method", r.Method,
					"path", r.URL.Path,
				)
				rejectRateLimited(w, rl.window)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP извлекает IP клиента. Сервер живет за reverse proxy,
// поэтому сначала проверяются проксирующие заголовки.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Первый адрес списка принадлежит реальному клиенту
		if idx := strings.IndexByte(xff, ','); idx >= 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}
