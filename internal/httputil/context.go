package httputil

import (
	"context"
	"net/http"

	"github.com/FlamingoLogic/chat-markdown-app/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const sessionKey contextKey = "session"

// WithSession attaches the authenticated session to the request context
func WithSession(r *http.Request, s *models.Session) *http.Request {
	ctx := context.WithValue(r.Context(), sessionKey, s)
	return r.WithContext(ctx)
}

// GetSession returns the session, or nil for anonymous requests
func GetSession(r *http.Request) *models.Session {
	s, _ := r.Context().Value(sessionKey).(*models.Session)
	return s
}

// IsManager reports whether the request runs in manager mode
func IsManager(r *http.Request) bool {
	s := GetSession(r)
	return s != nil && s.Manager
}
