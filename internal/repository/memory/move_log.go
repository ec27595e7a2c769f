// Package memory keeps session data in process memory for servers that run
// without Redis.
package memory

import (
	"context"
	"sync"

	"github.com/freeeve/diplomacy-plus/internal/model"
)

// MoveLog is an in-memory, size-capped move log keyed by session.
type MoveLog struct {
	mu       sync.RWMutex
	size     int
	sessions map[string][]model.MoveEvent
}

// NewMoveLog returns a log that keeps at most size moves per session.
func NewMoveLog(size int) *MoveLog {
	if size < 1 {
		size = 1
	}
	return &MoveLog{size: size, sessions: make(map[string][]model.MoveEvent)}
}

// AppendMove records ev, dropping the oldest move when the session is full.
func (l *MoveLog) AppendMove(_ context.Context, ev model.MoveEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	moves := append(l.sessions[ev.SessionID], ev)
	if len(moves) > l.size {
		moves = append([]model.MoveEvent(nil), moves[len(moves)-l.size:]...)
	}
	l.sessions[ev.SessionID] = moves
	return nil
}

// RecentMoves returns up to n of the most recent moves, oldest first.
func (l *MoveLog) RecentMoves(_ context.Context, sessionID string, n int) ([]model.MoveEvent, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	moves := l.sessions[sessionID]
	if n < 0 {
		n = 0
	}
	if n < len(moves) {
		moves = moves[len(moves)-n:]
	}
	out := make([]model.MoveEvent, len(moves))
	copy(out, moves)
	return out, nil
}

// DeleteSession forgets a session's moves.
func (l *MoveLog) DeleteSession(_ context.Context, sessionID string) error {
	l.mu.Lock()
	delete(l.sessions, sessionID)
	l.mu.Unlock()
	return nil
}
