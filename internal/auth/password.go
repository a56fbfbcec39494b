package auth

import (
	"errors"
	"fmt"

	"github.com/FlamingoLogic/chat-markdown-app/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// Login modes
const (
	ModeUser    = "user"
	ModeManager = "manager"
)

// PasswordAuthenticator checks the shared site password and the manager
// password against bcrypt hashes.
type PasswordAuthenticator struct {
	siteHash    []byte
	managerHash []byte
}

// NewPasswordAuthenticator builds an authenticator from bcrypt hashes or
// plain passwords. A plain password is hashed once here and then dropped.
// An empty manager secret disables manager logins.
func NewPasswordAuthenticator(siteHash, sitePlain, managerHash, managerPlain string) (*PasswordAuthenticator, error) {
	site, err := resolveHash("site", siteHash, sitePlain)
	if err != nil {
		return nil, err
	}
	manager, err := resolveHash("manager", managerHash, managerPlain)
	if err != nil {
		return nil, err
	}
	return &PasswordAuthenticator{siteHash: site, managerHash: manager}, nil
}

func resolveHash(name, hash, plain string) ([]byte, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("%s password hash is not a bcrypt hash: %w", name, err)
		}
		return []byte(hash), nil
	}
	if plain == "" {
		return nil, nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash %s password: %w", name, err)
	}
	return h, nil
}

// Enabled reports whether password logins are configured at all
func (a *PasswordAuthenticator) Enabled() bool {
	return a.siteHash != nil || a.managerHash != nil
}

// Authenticate checks password for the requested mode and returns whether
// the session is a manager session
func (a *PasswordAuthenticator) Authenticate(mode, password string) (bool, error) {
	switch mode {
	case ModeManager:
		if !matches(a.managerHash, password) {
			return false, domain.ErrUnauthorized
		}
		return true, nil
	case ModeUser, "":
		if !matches(a.siteHash, password) {
			return false, domain.ErrUnauthorized
		}
		return false, nil
	}
	return false, &domain.ValidationError{Message: fmt.Sprintf("unknown login mode %q", mode)}
}

func matches(hash []byte, password string) bool {
	if hash == nil || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

// HashPassword returns a bcrypt hash for configuration files
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
