// Package middlewarectx содержит HTTP-middleware приложения.
package middlewarectx

import (
	"net/http"
)

// CORS возвращает middleware, выставляющее заголовки Access-Control-*.
// При allowedOrigin == "*" в ответ подставляется Origin запроса.
// Preflight-запросы OPTIONS завершаются здесь же со статусом 204.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := allowedOrigin
			if allowedOrigin == "*" {
				if reqOrigin := r.Header.Get("Origin"); reqOrigin != "" {
					origin = reqOrigin
				}
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-Id")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
