package handler

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/lugo-striker/internal/auth"
)

// AuthHandler issues spectator tokens.
type AuthHandler struct {
	jwtMgr  *auth.JWTManager
	devMode bool
}

// NewAuthHandler creates an AuthHandler. DevLogin only answers when devMode is set.
func NewAuthHandler(jwtMgr *auth.JWTManager, devMode bool) *AuthHandler {
	return &AuthHandler{jwtMgr: jwtMgr, devMode: devMode}
}

// DevLogin handles GET /auth/dev?name=&match= and returns a viewer token.
// The optional match parameter scopes the token to a single match.
func (h *AuthHandler) DevLogin(w http.ResponseWriter, r *http.Request) {
	if !h.devMode {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing name parameter")
		return
	}

	tok, err := h.jwtMgr.GenerateViewerToken("dev-"+name, r.URL.Query().Get("match"))
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("Failed to sign viewer token")
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, tok)
}

// Health handles GET /healthz.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
