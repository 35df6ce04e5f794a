package store

import (
	"context"
	"testing"
	"time"
)

func TestRedisConfigDefaults(t *testing.T) {
	c := RedisConfig{}.withDefaults()
	if c.DialTimeout != 5*time.Second || c.ReadTimeout != 5*time.Second || c.WriteTimeout != 5*time.Second {
		t.Fatalf("timeout defaults = %+v", c)
	}
	if c.Retries != DefaultRetries || c.RetryDelay != DefaultRetryDelay {
		t.Fatalf("retry defaults = %+v", c)
	}
	if c.PingRetries != 6 || c.PingTimeout != 3*time.Second {
		t.Fatalf("ping defaults = %+v", c)
	}

	// explicit values survive
	c = RedisConfig{Retries: 5, RetryDelay: time.Second}.withDefaults()
	if c.Retries != 5 || c.RetryDelay != time.Second {
		t.Fatalf("explicit values lost: %+v", c)
	}
}

func TestOpenWithNothingEnabled(t *testing.T) {
	s, err := Open(context.Background(), Config{})
	if err != nil {
		t.Fatalf("Open = %v", err)
	}
	if s.KV != nil {
		t.Fatalf("disabled backend must stay nil")
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close = %v", err)
	}
}

func TestGuard(t *testing.T) {
	var nilStore *Store
	if err := nilStore.Guard(context.Background()); err == nil {
		t.Fatalf("nil store must not pass the guard")
	}

	s := &Store{}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("empty store guard = %v", err)
	}

	s.KV = NewRetryingKV(newScriptedConn(nil, 0), 1, 0, s.Log)
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("healthy kv guard = %v", err)
	}

	s.KV = NewRetryingKV(newScriptedConn(context.DeadlineExceeded, 10), 1, 0, s.Log)
	if err := s.Guard(context.Background()); err == nil {
		t.Fatalf("failing kv must fail the guard")
	}
}
