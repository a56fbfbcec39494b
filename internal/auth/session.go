package auth

import (
	"context"
	"errors"
	"time"

	"github.com/FlamingoLogic/chat-markdown-app/internal/domain"
	"github.com/FlamingoLogic/chat-markdown-app/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionIssuer = "chat-markdown-app"

// SessionManager issues and verifies HS256 session tokens
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionManager creates a session manager signing with secret
func NewSessionManager(secret string, ttl time.Duration) (*SessionManager, error) {
	if len(secret) < 16 {
		return nil, errors.New("session secret must be at least 16 characters")
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for a new session. Each login gets its own subject.
func (m *SessionManager) Issue(manager bool) (string, *models.SessionClaims, error) {
	now := m.now()
	claims := &models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Manager: manager,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// VerifyToken validates a session token. Only HS256 is accepted.
func (m *SessionManager) VerifyToken(ctx context.Context, tokenString string) (*models.Session, error) {
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid || claims.GetUserID() == "" {
		return nil, domain.ErrUnauthorized
	}
	return &models.Session{UserID: claims.GetUserID(), Manager: claims.Manager}, nil
}

// Close is a no-op
func (m *SessionManager) Close() error { return nil }
