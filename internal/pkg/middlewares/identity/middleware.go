package identity

import (
	"context"
	"net/http"
	"strings"

	"jamii/internal/entities"
	"jamii/pkg/logger"
)

const (
	HeaderUserID = "X-User-Id"
	HeaderRole   = "X-User-Role"
)

type ctxKey struct{}

// Middleware переносит личность из заголовков auth-шлюза в контекст запроса.
// Без валидной пары id+role запрос дальше не идет.
func Middleware(log handlerLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
			role := entities.Role(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderRole))))

			if userID == "" || !role.IsValid() {
				log.With(
					logger.NewField("path", r.URL.Path),
					logger.NewField("role", role.String()),
					logger.NewField("remote_addr", r.RemoteAddr),
				).Warn("request without valid identity")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthenticated","message":"missing or invalid identity","retryable":false}`))
				return
			}

			ctx := WithIdentity(r.Context(), entities.Identity{UserID: userID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithIdentity(ctx context.Context, id entities.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (entities.Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(entities.Identity)
	return id, ok
}
