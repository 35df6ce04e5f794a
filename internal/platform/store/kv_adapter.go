package store

import (
	"context"
	"time"

	perr "scorebox/internal/platform/errors"
	"scorebox/internal/platform/logger"
)

// Conn is the single-attempt connection seam the retrying adapter drives.
// Implementations hand out a fresh pooled connection per call, so a failed
// attempt never pins a broken handle across the retry delay
type Conn interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// retryingKV wraps a Conn with the bounded-retry contract behind the KV seam
type retryingKV struct {
	conn    Conn
	retries int
	delay   time.Duration
	log     logger.Logger

	// sleep is a seam so tests can observe delays without waiting
	sleep func(time.Duration)
}

// NewRetryingKV builds the KV adapter over conn. retries is the total attempt
// bound (not the number of re-tries); delay is the fixed inter-attempt pause
func NewRetryingKV(conn Conn, retries int, delay time.Duration, log logger.Logger) KV {
	if retries <= 0 {
		retries = DefaultRetries
	}
	if delay <= 0 {
		delay = DefaultRetryDelay
	}
	return &retryingKV{
		conn:    conn,
		retries: retries,
		delay:   delay,
		log:     log,
		sleep:   time.Sleep,
	}
}

// retry runs fn up to the attempt bound. Transient failures sleep and go
// again on a fresh connection; non-transient failures return immediately;
// the last transient failure propagates once attempts are exhausted
func (k *retryingKV) retry(ctx context.Context, op string, fn func() error) error {
	var last error
	for attempt := 1; attempt <= k.retries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !perr.IsRetryable(err) {
			return perr.Wrapf(err, perr.ErrorCodeStore, "kv %s failed", op)
		}
		last = err
		k.log.Warn().
			Err(err).
			Str("op", op).
			Int("attempt", attempt).
			Int("max", k.retries).
			Msg("kv operation failed")
		if attempt < k.retries {
			k.sleep(k.delay)
		}
	}
	return perr.Wrapf(last, perr.ErrorCodeUnavailable, "kv %s: retries exhausted", op)
}

// Get is a hard read: failure after retries propagates
func (k *retryingKV) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		val string
		ok  bool
	)
	err := k.retry(ctx, "get", func() error {
		v, o, e := k.conn.Get(ctx, key)
		val, ok = v, o
		return e
	})
	if err != nil {
		return "", false, err
	}
	return val, ok, nil
}

// Set is a hard write: failure after retries propagates
func (k *retryingKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return k.retry(ctx, "set", func() error {
		return k.conn.Set(ctx, key, value, ttl)
	})
}

// Delete is a hard delete: failure after retries propagates
func (k *retryingKV) Delete(ctx context.Context, key string) error {
	return k.retry(ctx, "del", func() error {
		return k.conn.Del(ctx, key)
	})
}

// CacheGet is the soft read: any failure degrades to a miss
func (k *retryingKV) CacheGet(ctx context.Context, key string) (string, bool) {
	val, ok, err := k.Get(ctx, key)
	if err != nil {
		k.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return "", false
	}
	return val, ok
}

// CacheSet is the soft write: any failure degrades to a no-op
func (k *retryingKV) CacheSet(ctx context.Context, key, value string, ttl time.Duration) {
	if err := k.Set(ctx, key, value, ttl); err != nil {
		k.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// Ping forwards readiness checks to the underlying connection
func (k *retryingKV) Ping(ctx context.Context) error { return k.conn.Ping(ctx) }

// Close forwards to the underlying connection
func (k *retryingKV) Close() error { return k.conn.Close() }
