package handler

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/diplomacy-plus/internal/auth"
	"github.com/freeeve/diplomacy-plus/internal/service"
)

// AuthHandler issues tokens for roster seats.
type AuthHandler struct {
	jwtMgr *auth.JWTManager
	svc    *service.SessionService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(jwtMgr *auth.JWTManager, svc *service.SessionService) *AuthHandler {
	return &AuthHandler{jwtMgr: jwtMgr, svc: svc}
}

// Join handles POST /auth/join. The roster is fixed at startup, so joining
// only claims an existing seat by name.
func (h *AuthHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Player string `json:"player"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Player == "" {
		writeError(w, http.StatusBadRequest, "player is required")
		return
	}
	if !h.svc.HasPlayer(req.Player) {
		writeError(w, http.StatusNotFound, "no such player in this session")
		return
	}

	tokens, err := h.jwtMgr.GenerateTokenPair(req.Player)
	if err != nil {
		log.Error().Err(err).Str("player", req.Player).Msg("Failed to generate tokens")
		writeError(w, http.StatusInternalServerError, "failed to generate tokens")
		return
	}
	log.Info().Str("player", req.Player).Str("sessionId", h.svc.ID()).Msg("Player joined")
	writeJSON(w, http.StatusOK, tokens)
}

// RefreshToken exchanges a refresh token for a new token pair.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims, err := h.jwtMgr.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	tokens, err := h.jwtMgr.GenerateTokenPair(claims.Player)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate tokens")
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}
