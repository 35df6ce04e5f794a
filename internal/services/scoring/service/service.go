// Package service contains the scoring dispatch pipeline: envelope parsing,
// authentication and routing to the method handlers
package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"scorebox/internal/modkit"
	"scorebox/internal/platform/logger"
	"scorebox/internal/platform/store"
	"scorebox/internal/services/scoring/domain"
)

// handlerFunc is one routed method. A non-nil error means an internal
// failure the transport turns into a 500; validation and auth outcomes are
// always expressed through the (result, code) pair
type handlerFunc func(ctx context.Context, env *domain.Envelope, tel domain.Telemetry) (any, int, error)

// Service routes signed method calls to their handlers
type Service struct {
	kv  store.KV
	log logger.Logger
	now func() time.Time

	handlers map[string]handlerFunc
}

// Option mutates the service during construction
type Option func(*Service)

// WithClock overrides the wall clock, used by tests to pin the admin token
// hour window and the birthday age anchor
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New constructs the scoring service. A nil KV is allowed: scoring then
// skips caching entirely while clients_interests reports the store as down
func New(deps modkit.Deps, opts ...Option) *Service {
	s := &Service{
		kv:  deps.KV,
		log: deps.Log,
		now: time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.handlers = map[string]handlerFunc{
		"online_score":      s.onlineScore,
		"clients_interests": s.clientsInterests,
	}
	return s
}

// Dispatch parses the envelope, authenticates and routes to a handler.
// Codes are http statuses: 422 invalid request, 403 forbidden, 200 ok.
// err is non-nil only for internal failures (hard store errors), which the
// transport maps to 500
func (s *Service) Dispatch(ctx context.Context, body map[string]any, tel domain.Telemetry) (any, int, error) {
	env, errs := domain.ParseEnvelope(body, s.now())
	if errs != nil {
		return errs, http.StatusUnprocessableEntity, nil
	}

	if !s.CheckAuth(env) {
		return nil, http.StatusForbidden, nil
	}

	h, ok := s.handlers[env.Method]
	if !ok {
		return fmt.Sprintf("Unknown method: %s", env.Method), http.StatusUnprocessableEntity, nil
	}

	return h(ctx, env, tel)
}
