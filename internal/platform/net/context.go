// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// WithRequest annotates context with the request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// EnsureRequestID returns the request id on the context, minting a fresh
// uuid when the caller supplied none
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if v := RequestID(ctx); v != "" {
		return ctx, v
	}
	id := uuid.New().String()
	return WithRequest(ctx, id), id
}
