package handler

import (
	"net/http"

	"storefront/internal/auth"

	"github.com/rs/zerolog"
)

// AuthHandler handles the auth.* procedures.
type AuthHandler struct {
	sessions *auth.Sessions
	logger   zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(sessions *auth.Sessions, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

// Me handles auth.me: the current identity, or null for anonymous requests.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, auth.UserFrom(r.Context()))
}

// Logout handles auth.logout: clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", h.logger)
		return
	}

	http.SetCookie(w, h.sessions.ClearCookie())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
