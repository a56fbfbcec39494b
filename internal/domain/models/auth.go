package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are the claims carried by library session tokens.
// Tokens issued by a remote identity provider are mapped onto the same shape.
type SessionClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, exp, iat, ...)
	Manager              bool   `json:"manager"`
	Role                 string `json:"role,omitempty"` // remote tokens: "manager" grants manager mode
	Email                string `json:"email,omitempty"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *SessionClaims) GetUserID() string {
	return c.Subject
}

// Session is the authenticated caller attached to a request context.
type Session struct {
	UserID  string `json:"user_id"`
	Manager bool   `json:"manager"`
}
