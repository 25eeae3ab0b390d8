package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"focusportal/internal/auth"
	"focusportal/internal/httputil"
)

// skipAuthPaths are served without a session token.
var skipAuthPaths = map[string]bool{
	"/health": true,
}

// Auth middleware extracts the Bearer token, verifies it, and stores
// the authenticated user ID in the request context. Requests without a
// valid token get a 401 problem response.
//
// The websocket endpoint cannot set an Authorization header from a
// browser, so it also accepts the token as a "token" query parameter.
func Auth(verifier auth.TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skipAuthPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := extractToken(r)
			if tokenString == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(tokenString)
			if err != nil {
				logger.Debug("token verification failed", "path", r.URL.Path, "error", err)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return r.URL.Query().Get("token")
}
