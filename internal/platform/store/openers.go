package store

import (
	"context"
	"fmt"
	"time"

	"scorebox/internal/platform/store/rds"
)

// openKV opens redis and wraps it with the retrying adapter
func openKV(ctx context.Context, cfg Config, s *Store) (KV, error) {
	rc := cfg.Redis.withDefaults()

	client := rds.Open(rds.Config{
		Addr:         rc.Addr,
		DB:           rc.DB,
		DialTimeout:  rc.DialTimeout,
		ReadTimeout:  rc.ReadTimeout,
		WriteTimeout: rc.WriteTimeout,
	})

	// Connection guardrails: ping with retry/backoff using the raw client
	var lastErr error
	backoff := 150 * time.Millisecond
	for i := 0; i < rc.PingRetries; i++ {
		toCtx, cancel := context.WithTimeout(ctx, rc.PingTimeout)
		lastErr = client.Ping(toCtx)
		cancel()

		if lastErr == nil {
			// publish the adapter only after the pool is healthy
			return NewRetryingKV(client, rc.Retries, rc.RetryDelay, s.Log), nil
		}
		if ctx.Err() != nil {
			_ = client.Close()
			return nil, ctx.Err()
		}
		time.Sleep(backoff)
		if backoff < 2*time.Second {
			backoff *= 2
			if backoff > 2*time.Second {
				backoff = 2 * time.Second
			}
		}
	}

	_ = client.Close()
	return nil, fmt.Errorf("redis ping failed after %d attempts: %w", rc.PingRetries, lastErr)
}
