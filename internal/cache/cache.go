package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUnavailable is returned when no redis client is configured.
var ErrUnavailable = errors.New("redis unavailable")

// Client wraps redis.Client. A nil Client behaves as an unreachable server.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return ErrUnavailable
	}
	return c.client.Ping(ctx).Err()
}

// IncrWindow increments a fixed-window counter and returns the new count
// with the time left in the window. The window starts on the first hit.
func (c *Client) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if c == nil || c.client == nil {
		return 0, 0, ErrUnavailable
	}

	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("incr %s: %w", key, err)
	}
	if count == 1 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return count, window, fmt.Errorf("expire %s: %w", key, err)
		}
		return count, window, nil
	}

	ttl, err := c.client.TTL(ctx, key).Result()
	if err != nil {
		return count, window, fmt.Errorf("ttl %s: %w", key, err)
	}
	if ttl < 0 {
		// a previous Expire was lost; restart the window
		_ = c.client.Expire(ctx, key, window).Err()
		ttl = window
	}
	return count, ttl, nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
