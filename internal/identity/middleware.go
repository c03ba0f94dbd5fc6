package identity

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/calebo95/athlete-portal/internal/platform/httpx"
	"github.com/calebo95/athlete-portal/internal/shared"
)

// Middleware extracts the bearer token, resolves it to a user and stores the
// user on the request context. Requests without a valid token are rejected.
func Middleware(logger *slog.Logger, resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
				return
			}
			user, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				if errors.Is(err, ErrTokenRejected) {
					httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "token rejected")
					return
				}
				logger.Error("resolve identity", slog.Any("error", err))
				httpx.Problem(w, http.StatusBadGateway, "Bad Gateway", "identity provider unavailable")
				return
			}
			next.ServeHTTP(w, r.WithContext(shared.ContextWithUser(r.Context(), user)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}
