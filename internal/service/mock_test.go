package service

import (
	"context"
	"errors"
	"sync"

	"github.com/freeeve/diplomacy-plus/internal/model"
)

type mockMoveLog struct {
	mu      sync.Mutex
	moves   map[string][]model.MoveEvent
	failErr error
	deleted []string
}

func newMockMoveLog() *mockMoveLog {
	return &mockMoveLog{moves: make(map[string][]model.MoveEvent)}
}

func (m *mockMoveLog) AppendMove(_ context.Context, ev model.MoveEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.moves[ev.SessionID] = append(m.moves[ev.SessionID], ev)
	return nil
}

func (m *mockMoveLog) RecentMoves(_ context.Context, sessionID string, n int) ([]model.MoveEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.moves[sessionID]
	if n < len(all) {
		all = all[len(all)-n:]
	}
	return append([]model.MoveEvent{}, all...), nil
}

func (m *mockMoveLog) DeleteSession(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.moves, sessionID)
	m.deleted = append(m.deleted, sessionID)
	return nil
}

type broadcastCall struct {
	sessionID string
	eventType string
	data      any
}

type mockBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
	seen  chan struct{}
}

func newMockBroadcaster() *mockBroadcaster {
	return &mockBroadcaster{seen: make(chan struct{}, 64)}
}

func (m *mockBroadcaster) BroadcastSessionEvent(sessionID, eventType string, data any) {
	m.mu.Lock()
	m.calls = append(m.calls, broadcastCall{sessionID, eventType, data})
	m.mu.Unlock()
	select {
	case m.seen <- struct{}{}:
	default:
	}
}

func (m *mockBroadcaster) snapshot() []broadcastCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]broadcastCall{}, m.calls...)
}

// denyAll rejects every caller.
type denyAll struct{}

var errDenied = errors.New("denied")

func (denyAll) Authorize(context.Context, string) error { return errDenied }

type mockSubscriber struct {
	ch  chan model.MoveEvent
	err error
}

func (m *mockSubscriber) SubscribeMoves(context.Context, string) (<-chan model.MoveEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.ch, nil
}
