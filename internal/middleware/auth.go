package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/FlamingoLogic/chat-markdown-app/internal/auth"
	"github.com/FlamingoLogic/chat-markdown-app/internal/httputil"
)

// Authenticate requires a valid bearer token and attaches the session to
// the request context.
func Authenticate(verifier auth.TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			session, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				logger.Debug("token rejected", "path", r.URL.Path, "error", err)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			next.ServeHTTP(w, httputil.WithSession(r, session))
		})
	}
}

// RequireManager rejects requests whose session is not in manager mode
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !httputil.IsManager(r) {
			httputil.RespondError(w, http.StatusForbidden, "manager mode required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
