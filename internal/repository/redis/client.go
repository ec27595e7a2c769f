package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps the Redis client for live session data.
type Client struct {
	rdb     *redis.Client
	logSize int64
	logTTL  time.Duration
}

// NewClient creates a Redis client from a connection URL. Each session keeps
// at most logSize moves, and its keys expire logTTL after the last write.
func NewClient(ctx context.Context, redisURL string, logSize int, logTTL time.Duration) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewClientFromPool(rdb, logSize, logTTL), nil
}

// NewClientFromPool wraps an existing redis.Client for use in tests.
func NewClientFromPool(rdb *redis.Client, logSize int, logTTL time.Duration) *Client {
	return &Client{rdb: rdb, logSize: int64(logSize), logTTL: logTTL}
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Underlying returns the raw redis client.
func (c *Client) Underlying() *redis.Client {
	return c.rdb
}
