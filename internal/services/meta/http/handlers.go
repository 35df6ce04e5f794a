// Package http provides meta endpoints
package http

import (
	stdctx "context"
	stdhttp "net/http"
	"time"

	phttp "scorebox/internal/platform/net/http"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	KV          any
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r phttp.Router, d Deps) {
	h := &handlers{deps: d}

	r.Get("/health", h.health)
	r.Get("/ready", h.ready)
	r.Get("/service", h.service)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // ok fail skipped unknown
	Error  string `json:"error,omitempty"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"`
	Started string `json:"started"`
	Uptime  int64  `json:"uptime"`
}

func (h *handlers) health(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	phttp.Reply(w, r, HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, stdhttp.StatusOK)
}

func (h *handlers) ready(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	check := func(name string, c any) ReadyCheck {
		if c == nil {
			return ReadyCheck{Name: name, Status: "skipped"}
		}
		if p, ok := c.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
			}
			return ReadyCheck{Name: name, Status: "ok"}
		}
		return ReadyCheck{Name: name, Status: "unknown"}
	}

	kv := check("kv", h.deps.KV)

	overall := "ok"
	if kv.Status != "ok" {
		overall = "degraded"
		if kv.Status == "fail" {
			overall = "fail"
		}
	}

	phttp.Reply(w, r, ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{kv},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, stdhttp.StatusOK)
}

func (h *handlers) service(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	uptime := time.Since(h.deps.StartedAt)
	phttp.Reply(w, r, ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, stdhttp.StatusOK)
}
