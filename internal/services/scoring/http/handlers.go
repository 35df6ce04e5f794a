// Package http provides the http transport for the scoring RPC surface
package http

import (
	"encoding/json"
	stdhttp "net/http"

	"scorebox/internal/platform/logger"
	pnet "scorebox/internal/platform/net"
	phttp "scorebox/internal/platform/net/http"
	"scorebox/internal/services/scoring/domain"
	svc "scorebox/internal/services/scoring/service"
)

// Register mounts the method endpoint on the given router
func Register(r phttp.Router, s *svc.Service) {
	h := &handlers{svc: s}
	r.Post("/", h.method)
}

type handlers struct{ svc *svc.Service }

// method is the single RPC entry point. The body is decoded with UseNumber
// so the schema engine can tell integers, floats and numeric strings apart
func (h *handlers) method(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()
	reqID := pnet.RequestID(ctx)
	log := logger.C(ctx)

	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close request body")
		}
	}()

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		log.Warn().Err(err).Msg("malformed request body")
		phttp.Reply(w, r, nil, stdhttp.StatusBadRequest)
		return
	}

	tel := domain.Telemetry{"request_id": reqID}
	result, code, err := h.svc.Dispatch(ctx, body, tel)
	if err != nil {
		// hard store failures land here; the call is an internal error
		log.Error().Err(err).Interface("telemetry", tel).Msg("dispatch failed")
		phttp.Reply(w, r, nil, stdhttp.StatusInternalServerError)
		return
	}

	phttp.Reply(w, r, result, code)
	log.Info().Int("code", code).Interface("telemetry", tel).Msg("method call done")
}
