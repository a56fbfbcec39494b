package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/FlamingoLogic/chat-markdown-app/internal/domain"
	"github.com/FlamingoLogic/chat-markdown-app/internal/domain/models"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// Remote token roles
const (
	RoleManager       = "manager"
	RoleAuthenticated = "authenticated"
)

// RemoteVerifier accepts tokens signed by a remote identity provider whose
// public keys are published as a JWKS. The role claim decides the mode.
type RemoteVerifier struct {
	jwks   keyfunc.Keyfunc
	cancel context.CancelFunc
	logger *slog.Logger
}

// NewRemoteVerifier fetches keys from jwksURL. Keys are cached and refreshed
// in the background until Close.
func NewRemoteVerifier(jwksURL string, logger *slog.Logger) (*RemoteVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	ctx, cancel := context.WithCancel(context.Background())
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	logger.Info("remote token verifier initialized", "jwks_url", jwksURL)
	return &RemoteVerifier{jwks: jwks, cancel: cancel, logger: logger}, nil
}

// NewRemoteVerifierWithKeyfunc uses an existing key source
func NewRemoteVerifierWithKeyfunc(jwks keyfunc.Keyfunc, logger *slog.Logger) *RemoteVerifier {
	return &RemoteVerifier{jwks: jwks, cancel: func() {}, logger: logger}
}

// VerifyToken validates the signature and maps the role claim onto a session
func (v *RemoteVerifier) VerifyToken(ctx context.Context, tokenString string) (*models.Session, error) {
	claims := &models.SessionClaims{}
	// Only asymmetric algorithms; an HS256 token here would be signed with a public key
	token, err := jwt.ParseWithClaims(tokenString, claims, v.jwks.Keyfunc,
		jwt.WithValidMethods([]string{"RS256", "ES256"}),
	)
	if err != nil || !token.Valid {
		v.logger.Debug("remote token rejected", "error", err)
		return nil, domain.ErrUnauthorized
	}

	if claims.Subject == "" {
		v.logger.Debug("remote token missing subject claim")
		return nil, domain.ErrUnauthorized
	}

	switch claims.Role {
	case RoleManager:
		return &models.Session{UserID: claims.Subject, Manager: true}, nil
	case RoleAuthenticated:
		return &models.Session{UserID: claims.Subject}, nil
	}

	v.logger.Warn("remote token has unexpected role", "role", claims.Role, "user_id", claims.Subject)
	return nil, domain.ErrUnauthorized
}

// Close stops the background key refresh
func (v *RemoteVerifier) Close() error {
	v.cancel()
	v.logger.Info("remote token verifier closed")
	return nil
}

// ChainVerifier tries each verifier in order and returns the first session
type ChainVerifier []TokenVerifier

// VerifyToken returns the first successful verification
func (c ChainVerifier) VerifyToken(ctx context.Context, tokenString string) (*models.Session, error) {
	for _, v := range c {
		if s, err := v.VerifyToken(ctx, tokenString); err == nil {
			return s, nil
		}
	}
	return nil, domain.ErrUnauthorized
}

// Close closes every verifier
func (c ChainVerifier) Close() error {
	var errs []error
	for _, v := range c {
		errs = append(errs, v.Close())
	}
	return errors.Join(errs...)
}
