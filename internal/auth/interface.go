package auth

import (
	"context"

	"github.com/FlamingoLogic/chat-markdown-app/internal/domain/models"
)

// TokenVerifier turns a bearer token into a session.
// Implementations return domain.ErrUnauthorized for any invalid token.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, tokenString string) (*models.Session, error)

	// Close releases background resources (JWKS refresh, connections)
	Close() error
}
