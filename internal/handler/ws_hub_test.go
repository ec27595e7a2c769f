package handler

import (
	"encoding/json"
	"sync"
	"testing"
	"time"
)

func newTestConn(player string) *WSConn {
	return &WSConn{
		conn:   nil, // no real connection for hub tests
		player: player,
		send:   make(chan []byte, 256),
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()
	c := newTestConn("Ann")

	hub.Register(c)
	if hub.ConnectionCount() != 1 {
		t.Errorf("expected 1 connection, got %d", hub.ConnectionCount())
	}

	hub.Unregister(c)
	if hub.ConnectionCount() != 0 {
		t.Errorf("expected 0 connections, got %d", hub.ConnectionCount())
	}
}

func TestHubSubscribeUnsubscribe(t *testing.T) {
	hub := NewHub()
	c := newTestConn("Ann")
	hub.Register(c)
	defer hub.Unregister(c)

	hub.Subscribe(c, "session-1")
	if hub.SessionSubscriberCount("session-1") != 1 {
		t.Errorf("expected 1 subscriber, got %d", hub.SessionSubscriberCount("session-1"))
	}

	hub.Unsubscribe(c, "session-1")
	if hub.SessionSubscriberCount("session-1") != 0 {
		t.Errorf("expected 0 subscribers, got %d", hub.SessionSubscriberCount("session-1"))
	}
}

func TestHubBroadcastToSession(t *testing.T) {
	hub := NewHub()
	c1 := newTestConn("Ann")
	c2 := newTestConn("Ben")
	c3 := newTestConn("Cat") // not subscribed

	hub.Register(c1)
	hub.Register(c2)
	hub.Register(c3)
	defer hub.Unregister(c1)
	defer hub.Unregister(c2)
	defer hub.Unregister(c3)

	hub.Subscribe(c1, "session-1")
	hub.Subscribe(c2, "session-1")

	hub.BroadcastToSession("session-1", WSEvent{
		Type:      EventUnitPlaced,
		SessionID: "session-1",
		Data:      map[string]string{"position": "Paris"},
	})

	// c1 and c2 should receive, c3 should not
	select {
	case msg := <-c1.send:
		var event WSEvent
		json.Unmarshal(msg, &event)
		if event.Type != EventUnitPlaced {
			t.Errorf("expected unit_placed, got %s", event.Type)
		}
	case <-time.After(time.Second):
		t.Error("c1 did not receive broadcast")
	}

	select {
	case <-c2.send:
		// ok
	case <-time.After(time.Second):
		t.Error("c2 did not receive broadcast")
	}

	select {
	case <-c3.send:
		t.Error("c3 should not have received broadcast")
	default:
		// ok
	}
}

func TestHubUnregisterCleansUpSubscriptions(t *testing.T) {
	hub := NewHub()
	c := newTestConn("Ann")
	hub.Register(c)
	hub.Subscribe(c, "session-1")
	hub.Subscribe(c, "session-2")

	hub.Unregister(c)

	if hub.SessionSubscriberCount("session-1") != 0 {
		t.Errorf("expected 0 subscribers for session-1 after unregister")
	}
	if hub.SessionSubscriberCount("session-2") != 0 {
		t.Errorf("expected 0 subscribers for session-2 after unregister")
	}
}

func TestHubConcurrentAccess(t *testing.T) {
	hub := NewHub()
	var wg sync.WaitGroup

	// Concurrently register, subscribe, broadcast, unregister
	for i := range 50 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			c := newTestConn("Dan")
			hub.Register(c)
			hub.Subscribe(c, "session-1")
			hub.BroadcastToSession("session-1", WSEvent{Type: "test", SessionID: "session-1"})
			hub.Unsubscribe(c, "session-1")
			hub.Unregister(c)
		}(i)
	}

	wg.Wait()
	if hub.ConnectionCount() != 0 {
		t.Errorf("expected 0 connections after concurrent test, got %d", hub.ConnectionCount())
	}
}

func TestHubBroadcastSessionEvent(t *testing.T) {
	hub := NewHub()
	c := newTestConn("Ann")
	hub.Register(c)
	defer hub.Unregister(c)
	hub.Subscribe(c, "session-1")

	hub.BroadcastSessionEvent("session-1", EventUnitPlaced, map[string]string{"position": "Brest"})

	select {
	case msg := <-c.send:
		var event WSEvent
		json.Unmarshal(msg, &event)
		if event.Type != EventUnitPlaced {
			t.Errorf("expected unit_placed, got %s", event.Type)
		}
		if event.SessionID != "session-1" {
			t.Errorf("expected session-1, got %s", event.SessionID)
		}
	case <-time.After(time.Second):
		t.Error("did not receive broadcast")
	}
}

func TestWSEventSerialization(t *testing.T) {
	event := WSEvent{
		Type:      EventConnected,
		SessionID: "session-42",
		Data:      map[string]any{"player": "Ann"},
	}

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var parsed WSEvent
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.Type != EventConnected {
		t.Errorf("expected connected, got %s", parsed.Type)
	}
	if parsed.SessionID != "session-42" {
		t.Errorf("expected session-42, got %s", parsed.SessionID)
	}
}

func TestClientMessageSerialization(t *testing.T) {
	msg := ClientMessage{Action: "subscribe", SessionID: "session-1"}
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var parsed ClientMessage
	json.Unmarshal(data, &parsed)
	if parsed.Action != "subscribe" {
		t.Errorf("expected subscribe, got %s", parsed.Action)
	}
	if parsed.SessionID != "session-1" {
		t.Errorf("expected session-1, got %s", parsed.SessionID)
	}
}

func TestHubUnregisterTwice(t *testing.T) {
	hub := NewHub()
	c := newTestConn("Ann")
	hub.Register(c)
	hub.Unregister(c)
	hub.Unregister(c)
	if hub.ConnectionCount() != 0 {
		t.Errorf("expected 0 connections, got %d", hub.ConnectionCount())
	}
}
