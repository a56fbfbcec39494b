package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/FlamingoLogic/chat-markdown-app/internal/auth"
	"github.com/FlamingoLogic/chat-markdown-app/internal/httputil"
)

// LoginRequest is the body of POST /api/login
type LoginRequest struct {
	Mode     string `json:"mode"` // "user" (default) or "manager"
	Password string `json:"password"`
}

// LoginResponse carries the issued session token
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Manager   bool      `json:"manager"`
}

// AuthHandler exchanges the shared passwords for session tokens
type AuthHandler struct {
	passwords *auth.PasswordAuthenticator
	sessions  *auth.SessionManager
	logger    *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(passwords *auth.PasswordAuthenticator, sessions *auth.SessionManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		passwords: passwords,
		sessions:  sessions,
		logger:    logger,
	}
}

// Login checks the password for the requested mode and issues a token
// POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.passwords.Enabled() {
		httputil.RespondError(w, http.StatusServiceUnavailable, "password login is not configured")
		return
	}

	manager, err := h.passwords.Authenticate(req.Mode, req.Password)
	if err != nil {
		h.logger.Info("login rejected", "mode", req.Mode, "remote_addr", r.RemoteAddr)
		handleError(w, err)
		return
	}

	token, claims, err := h.sessions.Issue(manager)
	if err != nil {
		h.logger.Error("failed to issue session", "error", err)
		handleError(w, err)
		return
	}

	h.logger.Info("login accepted", "manager", manager, "session", claims.GetUserID())
	httputil.RespondJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		Manager:   manager,
	})
}

// Session reports the caller's session
// GET /api/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session := httputil.GetSession(r)
	if session == nil {
		httputil.RespondError(w, http.StatusUnauthorized, "no session")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, session)
}
