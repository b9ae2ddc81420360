package rate_limiter

import (
	"net/http"
	"strconv"

	"jamii/internal/pkg/middlewares/identity"
	"jamii/pkg/logger"

	"github.com/gorilla/mux"
)

// rateLimiterQPS - в будущем будет отдельный конфиг для rate limiter,
// пока принмаем поле от конфига сервера простым int
func Middleware(log handlerLogger, rateLimiterQPS int, rlimiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rlimiter.Allow() {
				reject(w, r, log, rateLimiterQPS, "global")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// PerIdentity ограничивает каждого пользователя отдельно. Ставится после
// identity-middleware; без идентичности ключом служит адрес клиента.
func PerIdentity(log handlerLogger, userQPS int, rlimiter KeyedLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.RemoteAddr
			if id, ok := identity.FromContext(r.Context()); ok {
				key = id.UserID
			}

			if !rlimiter.AllowKey(key) {
				reject(w, r, log, userQPS, "identity")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func reject(w http.ResponseWriter, r *http.Request, log handlerLogger, limit int, scope string) {
	handlerPath := r.URL.Path
	route := mux.CurrentRoute(r)
	if route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			handlerPath = template
		}
	}

	log.With(
		logger.NewField("method", r.Method),
		logger.NewField("path", r.URL.Path),
		logger.NewField("route", handlerPath),
		logger.NewField("scope", scope),
		logger.NewField("remote_addr", r.RemoteAddr),
	).Warn("rate limit exceeded")

	RateLimitExceededTotal.WithLabelValues(r.Method, handlerPath).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusTooManyRequests)

	_, err := w.Write([]byte(`{"error":"rate_limited","message":"Rate limit exceeded. Try again later.","retryable":true}`))
	if err != nil {
		log.With(
			logger.NewField("error", err),
			logger.NewField("path", r.URL.Path),
		).Error("failed to write rate limit response")
	}
}
