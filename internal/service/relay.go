package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/diplomacy-plus/internal/model"
)

// MoveSubscriber streams moves published for a session.
type MoveSubscriber interface {
	SubscribeMoves(ctx context.Context, sessionID string) (<-chan model.MoveEvent, error)
}

// MoveRelay forwards this session's moves, as published on Redis, to the
// WebSocket clients connected to this process.
type MoveRelay struct {
	sub         MoveSubscriber
	broadcaster Broadcaster
	sessionID   string
}

// NewMoveRelay creates a MoveRelay for one session.
func NewMoveRelay(sub MoveSubscriber, broadcaster Broadcaster, sessionID string) *MoveRelay {
	return &MoveRelay{sub: sub, broadcaster: broadcaster, sessionID: sessionID}
}

// Start subscribes and then forwards in the background until ctx is done.
// Subscription errors are returned before anything runs.
func (r *MoveRelay) Start(ctx context.Context) error {
	events, err := r.sub.SubscribeMoves(ctx, r.sessionID)
	if err != nil {
		return fmt.Errorf("relay subscribe: %w", err)
	}
	log.Info().Str("sessionId", r.sessionID).Msg("Move relay started")
	go r.forward(ctx, events)
	return nil
}

func (r *MoveRelay) forward(ctx context.Context, events <-chan model.MoveEvent) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("sessionId", r.sessionID).Msg("Move relay stopped")
			return
		case ev, ok := <-events:
			if !ok {
				log.Warn().Str("sessionId", r.sessionID).Msg("Move relay subscription closed")
				return
			}
			r.broadcaster.BroadcastSessionEvent(ev.SessionID, EventUnitPlaced, ev)
		}
	}
}
