package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/freeeve/diplomacy-plus/internal/model"
)

// Key patterns for Redis session data.
func movesKey(sessionID string) string      { return "session:" + sessionID + ":moves" }
func EventsChannel(sessionID string) string { return "session:" + sessionID + ":events" }

// AppendMove records ev in the session's capped move list, refreshes the
// list's TTL and publishes ev on the session's events channel.
func (c *Client) AppendMove(ctx context.Context, ev model.MoveEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal move: %w", err)
	}
	key := movesKey(ev.SessionID)
	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, data)
		pipe.LTrim(ctx, key, -c.logSize, -1)
		pipe.Expire(ctx, key, c.logTTL)
		pipe.Publish(ctx, EventsChannel(ev.SessionID), data)
		return nil
	})
	if err != nil {
		return fmt.Errorf("append move: %w", err)
	}
	return nil
}

// RecentMoves returns up to n of the most recent moves, oldest first.
func (c *Client) RecentMoves(ctx context.Context, sessionID string, n int) ([]model.MoveEvent, error) {
	if n <= 0 {
		return []model.MoveEvent{}, nil
	}
	raw, err := c.rdb.LRange(ctx, movesKey(sessionID), int64(-n), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("recent moves: %w", err)
	}
	moves := make([]model.MoveEvent, 0, len(raw))
	for _, r := range raw {
		var ev model.MoveEvent
		if err := json.Unmarshal([]byte(r), &ev); err != nil {
			return nil, fmt.Errorf("unmarshal move: %w", err)
		}
		moves = append(moves, ev)
	}
	return moves, nil
}

// DeleteSession removes everything stored for a session.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.rdb.Del(ctx, movesKey(sessionID)).Err()
}

// SubscribeMoves streams moves published for a session until ctx ends.
func (c *Client) SubscribeMoves(ctx context.Context, sessionID string) (<-chan model.MoveEvent, error) {
	sub := c.rdb.Subscribe(ctx, EventsChannel(sessionID))
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	out := make(chan model.MoveEvent)
	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev model.MoveEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
