package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/freeeve/diplomacy-plus/pkg/diplomacy"
)

func TestTurnAuthorizer(t *testing.T) {
	var a TurnAuthorizer

	if err := a.Authorize(WithPlayer(context.Background(), "Ann"), "Ann"); err != nil {
		t.Errorf("current player should be admitted: %v", err)
	}

	err := a.Authorize(WithPlayer(context.Background(), "Ben"), "Ann")
	if !errors.Is(err, diplomacy.ErrNotYourTurn) {
		t.Errorf("expected ErrNotYourTurn, got %v", err)
	}

	err = a.Authorize(context.Background(), "Ann")
	if !errors.Is(err, ErrMissingToken) {
		t.Errorf("expected ErrMissingToken, got %v", err)
	}
}

func TestTurnAuthorizerGuardsEngine(t *testing.T) {
	gs, err := diplomacy.NewGameState(diplomacy.StandardCatalog(), []string{"Ann", "Ben"})
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	e := diplomacy.NewEngine(gs, diplomacy.WithAuthorizer(TurnAuthorizer{}))

	ben := WithPlayer(context.Background(), "Ben")
	if _, err := e.RequestMove(ben, "Paris", "army"); !errors.Is(err, diplomacy.ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if gs.Board.UnitCount() != 0 {
		t.Fatal("rejected caller must not change the board")
	}

	ann := WithPlayer(context.Background(), "Ann")
	if _, err := e.RequestMove(ann, "Paris", "army"); err != nil {
		t.Fatalf("Ann's move: %v", err)
	}
	if _, err := e.RequestMove(ben, "Brest", "fleet"); err != nil {
		t.Fatalf("Ben's move: %v", err)
	}
}
