package logger

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"fatal":   zerolog.FatalLevel,
		"panic":   zerolog.PanicLevel,
		" INFO ":  zerolog.InfoLevel,
		"bogus":   zerolog.DebugLevel,
		"":        zerolog.DebugLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestGetIsStable(t *testing.T) {
	a := Get()
	b := Get()
	if a == nil || b == nil || a != b {
		t.Fatalf("Get must return the same root logger")
	}
}

func TestWithRequestAndC(t *testing.T) {
	ctx := WithRequest(context.Background(), "req-42")
	if C(ctx) == nil {
		t.Fatalf("C must return a logger")
	}

	// empty id is a no-op annotation
	ctx2 := WithRequest(context.Background(), "")
	if v := ctx2.Value(keyRequestID); v != nil {
		t.Fatalf("empty request id must not annotate, got %v", v)
	}
}

func TestNamed(t *testing.T) {
	if Named("") != Get() {
		t.Fatalf("empty component must return the root logger")
	}
	if Named("store") == Get() {
		t.Fatalf("named logger must be a child")
	}
}
