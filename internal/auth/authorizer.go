package auth

import (
	"context"
	"fmt"

	"github.com/freeeve/diplomacy-plus/pkg/diplomacy"
)

// TurnAuthorizer admits a move only when the authenticated player in ctx is
// the player whose turn it is.
type TurnAuthorizer struct{}

func (TurnAuthorizer) Authorize(ctx context.Context, currentPlayer string) error {
	player := PlayerFromContext(ctx)
	if player == "" {
		return ErrMissingToken
	}
	if player != currentPlayer {
		return fmt.Errorf("%w: %s is waiting for %s", diplomacy.ErrNotYourTurn, player, currentPlayer)
	}
	return nil
}
