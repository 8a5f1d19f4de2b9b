package middleware

import (
	"net/http"
)

// DefaultMaxBodyBytes ограничивает размер тела запроса.
// Прогресс самой большой страницы в base64 занимает меньше 16 KB,
// поэтому 64 KB хватает с запасом.
const DefaultMaxBodyBytes int64 = 64 << 10

// BodyLimitMiddleware создает middleware, ограничивающее размер тела запроса
// Чтение сверх лимита вернет ошибку в хендлере при декодировании JSON
func BodyLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_, _ = w.Write([]byte(`{"error":"request body too large"}`))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
