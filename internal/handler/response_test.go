package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/freeeve/diplomacy-plus/internal/auth"
	"github.com/freeeve/diplomacy-plus/pkg/diplomacy"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	data := map[string]string{"position": "Paris", "unit": "army"}
	writeJSON(rec, http.StatusOK, data)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	ct := rec.Header().Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %s", ct)
	}

	var result map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result["position"] != "Paris" || result["unit"] != "army" {
		t.Errorf("unexpected body: %v", result)
	}
}

func TestWriteJSONWithStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusCreated, map[string]int{"seq": 1})
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusBadRequest, "player is required")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	var result map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result["error"] != "player is required" {
		t.Errorf("expected error=player is required, got %s", result["error"])
	}
}

func TestDecodeJSON(t *testing.T) {
	body := `{"position":"Brest","unit":"fleet"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var data MoveRequest
	if err := decodeJSON(req, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.Position != "Brest" {
		t.Errorf("expected position=Brest, got %s", data.Position)
	}
	if data.Unit != "fleet" {
		t.Errorf("expected unit=fleet, got %s", data.Unit)
	}
}

func TestDecodeJSONUnknownField(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"position":"Brest","troops":3}`))
	var data MoveRequest
	if err := decodeJSON(req, &data); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestDecodeJSONInvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not json"))
	var data struct{}
	if err := decodeJSON(req, &data); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestDecodeJSONEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	var data struct{}
	if err := decodeJSON(req, &data); err == nil {
		t.Error("expected error for empty body")
	}
}

func TestWriteJSONSlice(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, []string{"Paris", "Brest", "Kiel"})

	var result []string
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(result) != 3 {
		t.Errorf("expected 3 elements, got %d", len(result))
	}
}

func TestWriteJSONEmptySlice(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, []struct{}{})

	body := strings.TrimSpace(rec.Body.String())
	if body != "[]" {
		t.Errorf("expected [], got %s", body)
	}
}

func TestWriteMoveErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"usage", &diplomacy.MoveError{Kind: diplomacy.ErrUsage, Args: 1}, http.StatusBadRequest, "usage"},
		{"position", &diplomacy.MoveError{Kind: diplomacy.ErrInvalidPosition, Position: "Atlantis"}, http.StatusUnprocessableEntity, "invalid_position"},
		{"unit", &diplomacy.MoveError{Kind: diplomacy.ErrInvalidUnitType, Unit: "tank"}, http.StatusUnprocessableEntity, "invalid_unit_type"},
		{"illegal", &diplomacy.MoveError{Kind: diplomacy.ErrIllegalMove, Reason: diplomacy.FleetRequiresWater}, http.StatusUnprocessableEntity, "illegal_move"},
		{"turn", fmt.Errorf("%w: Ben", diplomacy.ErrNotYourTurn), http.StatusForbidden, "not_your_turn"},
		{"no token", auth.ErrMissingToken, http.StatusUnauthorized, ""},
		{"territory", diplomacy.ErrTerritoryNotFound, http.StatusNotFound, ""},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeMoveError(rec, tt.err)
			if rec.Code != tt.status {
				t.Errorf("expected %d, got %d", tt.status, rec.Code)
			}
			var body moveErrorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Kind != tt.kind {
				t.Errorf("expected kind=%q, got %q", tt.kind, body.Kind)
			}
		})
	}
}

func TestWriteMoveErrorReason(t *testing.T) {
	rec := httptest.NewRecorder()
	writeMoveError(rec, &diplomacy.MoveError{Kind: diplomacy.ErrIllegalMove, Reason: diplomacy.ArmyRequiresLand, Position: "NorthSea", Unit: "army"})

	var body moveErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Reason != "armies may only occupy land" {
		t.Errorf("unexpected reason %q", body.Reason)
	}
	if body.Position != "NorthSea" || body.Unit != "army" {
		t.Errorf("unexpected body %+v", body)
	}
}
