package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"shepherd/internal/auth"
	"shepherd/internal/authz"
	"shepherd/internal/httputil"
)

// publicPaths are reachable without a token.
var publicPaths = map[string]bool{
	"/health":            true,
	"/metrics":           true,
	"/api/auth/login":    true,
	"/api/auth/register": true,
}

// Auth verifies the bearer token and attaches the resulting Actor to the
// request context. Everything the authorization engine needs (id, role,
// church id) travels in the token claims.
func Auth(tokens *auth.TokenManager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] || strings.HasPrefix(r.URL.Path, "/audio/") {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				logger.Debug("token verification failed",
					"error", err,
					"path", r.URL.Path,
				)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			actor := authz.Actor{
				ID:       claims.Subject,
				Role:     claims.Role,
				ChurchID: claims.ChurchID,
			}
			next.ServeHTTP(w, httputil.WithActor(r, actor))
		})
	}
}
