package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/freeeve/diplomacy-plus/internal/logger"
	"github.com/freeeve/diplomacy-plus/internal/service"
	"github.com/freeeve/diplomacy-plus/pkg/diplomacy"
)

const (
	defaultRecentMoves = 20
	maxRecentMoves     = 100
)

// SessionHandler exposes the running game over HTTP.
type SessionHandler struct {
	svc *service.SessionService
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// MoveRequest is the body of POST /api/v1/moves. Either Command (the text
// "move <position> <unit>") or Position and Unit are given.
type MoveRequest struct {
	Command  string `json:"command,omitempty"`
	Position string `json:"position,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

// SubmitMove handles POST /api/v1/moves
func (h *SessionHandler) SubmitMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		p   *diplomacy.Placement
		err error
	)
	if req.Command != "" {
		args := strings.Fields(req.Command)
		if len(args) > 0 && args[0] == "move" {
			args = args[1:]
		}
		p, err = h.svc.Move(r.Context(), args)
	} else {
		p, err = h.svc.RequestMove(r.Context(), req.Position, req.Unit)
	}
	if err != nil {
		l := logger.ForRequest(r.Context())
		l.Debug().Err(err).Msg("Move rejected")
		writeMoveError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// GetBoard handles GET /api/v1/board and GET /api/v1/board?territory=Name
func (h *SessionHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("territory"); name != "" {
		t, err := h.svc.Territory(name)
		if err != nil {
			writeMoveError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Board())
}

// GetResources handles GET /api/v1/resources, defaulting to the player
// whose turn it is.
func (h *SessionHandler) GetResources(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Resources(r.URL.Query().Get("player"))
	if err != nil {
		writeMoveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetUnits handles GET /api/v1/units?player=Name, defaulting to the player
// whose turn it is.
func (h *SessionHandler) GetUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.svc.Units(r.URL.Query().Get("player"))
	if err != nil {
		writeMoveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, units)
}

// GetSession handles GET /api/v1/session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Session())
}

// RecentMoves handles GET /api/v1/moves/recent?n=20
func (h *SessionHandler) RecentMoves(w http.ResponseWriter, r *http.Request) {
	n := defaultRecentMoves
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = min(v, maxRecentMoves)
	}

	moves, err := h.svc.RecentMoves(r.Context(), n)
	if err != nil {
		l := logger.ForRequest(r.Context())
		l.Error().Err(err).Msg("Failed to read move log")
		writeError(w, http.StatusInternalServerError, "failed to read move log")
		return
	}
	writeJSON(w, http.StatusOK, moves)
}
