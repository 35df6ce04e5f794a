// Package rds wraps the go-redis client behind the store connection seam
package rds

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config carries redis connectivity knobs
type Config struct {
	Addr string
	DB   int

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Client is a thin wrapper over *redis.Client.
// Client-internal retries are disabled so the adapter above owns the retry
// policy; the pool hands out a fresh connection per command and drops broken
// ones on failure
type Client struct {
	R *redis.Client
}

// Open builds a client. It does not dial; readiness is probed via Ping
func Open(cfg Config) *Client {
	return &Client{
		R: redis.NewClient(&redis.Options{
			Addr:         cfg.Addr,
			DB:           cfg.DB,
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			MaxRetries:   -1, // adapter-owned retry policy
		}),
	}
}

// Get returns the value and a found flag; a redis miss is (.., false, nil)
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.R.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set stores value under key; ttl <= 0 means no expiry
func (c *Client) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.R.Set(ctx, key, value, ttl).Err()
}

// Del removes key; deleting a missing key is not an error
func (c *Client) Del(ctx context.Context, key string) error {
	return c.R.Del(ctx, key).Err()
}

// Ping reports readiness
func (c *Client) Ping(ctx context.Context) error {
	return c.R.Ping(ctx).Err()
}

// Close releases the pool
func (c *Client) Close() error { return c.R.Close() }
