package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/diplomacy-plus/internal/auth"
	"github.com/freeeve/diplomacy-plus/internal/service"
	"github.com/freeeve/diplomacy-plus/pkg/diplomacy"
)

const maxBodyBytes = 64 << 10

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// moveErrorBody is the JSON shape of a rejected move.
type moveErrorBody struct {
	Error    string `json:"error"`
	Kind     string `json:"kind"`
	Reason   string `json:"reason,omitempty"`
	Position string `json:"position,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

// writeMoveError maps engine and auth errors to status codes.
func writeMoveError(w http.ResponseWriter, err error) {
	var me *diplomacy.MoveError
	if errors.As(err, &me) {
		body := moveErrorBody{Error: err.Error(), Position: me.Position, Unit: me.Unit}
		status := http.StatusUnprocessableEntity
		switch {
		case errors.Is(err, diplomacy.ErrUsage):
			body.Kind, status = "usage", http.StatusBadRequest
		case errors.Is(err, diplomacy.ErrInvalidPosition):
			body.Kind = "invalid_position"
		case errors.Is(err, diplomacy.ErrInvalidUnitType):
			body.Kind = "invalid_unit_type"
		case errors.Is(err, diplomacy.ErrIllegalMove):
			body.Kind, body.Reason = "illegal_move", me.Reason.String()
		}
		writeJSON(w, status, body)
		return
	}

	switch {
	case errors.Is(err, diplomacy.ErrNotYourTurn):
		writeJSON(w, http.StatusForbidden, moveErrorBody{Error: err.Error(), Kind: "not_your_turn"})
	case errors.Is(err, auth.ErrMissingToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, diplomacy.ErrTerritoryNotFound), errors.Is(err, service.ErrPlayerNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Msg("Unexpected move error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON reads and decodes a bounded JSON body, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
