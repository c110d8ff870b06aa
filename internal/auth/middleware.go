package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/portfolio-api/pkg/handlers"
)

// BearerToken extracts the token from an Authorization: Bearer header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Middleware attaches the Principal for a valid bearer token. Requests
// without a valid token continue anonymously.
func Middleware(resolver Resolver, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("middleware", "auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			p, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				if !errors.Is(err, ErrUnauthenticated) {
					logger.Error("token resolution failed", "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// Protect rejects callers without the admin capability with 401.
func Protect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			handlers.RespondMessage(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}
		next(w, r)
	}
}
