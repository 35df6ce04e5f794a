package errors

// Redis-specific helpers for classifying store errors into transient
// (connection/timeout class, worth a bounded retry) and non-transient
// (server-side command errors, fail immediately)

import (
	"context"
	stderrs "errors"
	"io"
	"net"
	"strings"
	"syscall"

	"github.com/redis/go-redis/v9"
)

// ExtractRedisError returns (redis.Error, true) if the root cause is a Redis server reply error
func ExtractRedisError(err error) (redis.Error, bool) {
	var rerr redis.Error
	if stderrs.As(Root(err), &rerr) {
		return rerr, true
	}
	return nil, false
}

// IsStoreMiss reports whether the error is the redis "no value" sentinel
func IsStoreMiss(err error) bool { return stderrs.Is(err, redis.Nil) }

// FromStore wraps a store error with ErrorCodeStore (or ErrorCodeUnavailable
// when the cause is transient). If err is nil, returns nil
func FromStore(err error, msg string) error {
	if err == nil {
		return nil
	}
	if IsRetryable(err) {
		return Wrap(err, ErrorCodeUnavailable, msg)
	}
	return Wrap(err, ErrorCodeStore, msg)
}

// IsRetryable reports whether a store error represents a transient
// connection/timeout condition worth retrying on a fresh connection.
// Server reply errors (wrong type, bad command, OOM) are not retryable
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// The caller gave up, not the dependency
	if stderrs.Is(err, context.Canceled) {
		return false
	}

	// Per-operation socket deadline expiring is the timeout class
	if stderrs.Is(err, context.DeadlineExceeded) {
		return true
	}

	// A miss is not a failure at all
	if stderrs.Is(err, redis.Nil) {
		return false
	}

	root := Root(err)

	// Structured server replies are authoritative and final
	var rerr redis.Error
	if stderrs.As(root, &rerr) {
		return false
	}

	var nerr net.Error
	if stderrs.As(root, &nerr) {
		return true
	}
	if stderrs.Is(root, io.EOF) || stderrs.Is(root, io.ErrUnexpectedEOF) {
		return true
	}
	if stderrs.Is(root, syscall.ECONNREFUSED) ||
		stderrs.Is(root, syscall.ECONNRESET) ||
		stderrs.Is(root, syscall.EPIPE) {
		return true
	}

	// Fallback: text patterns from the driver on dial/pool failures
	s := strings.ToLower(root.Error())
	switch {
	case strings.Contains(s, "connection refused"),
		strings.Contains(s, "connection reset"),
		strings.Contains(s, "broken pipe"),
		strings.Contains(s, "i/o timeout"),
		strings.Contains(s, "connection pool timeout"),
		strings.Contains(s, "use of closed network connection"):
		return true
	default:
		return false
	}
}
