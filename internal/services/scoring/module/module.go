// Package module wires scoring into the API
package module

import (
	stdhttp "net/http"

	"scorebox/internal/modkit"
	phttp "scorebox/internal/platform/net/http"
	str "scorebox/internal/platform/strings"
	scoringhttp "scorebox/internal/services/scoring/http"
	scoringsvc "scorebox/internal/services/scoring/service"
)

// Module implements the scoring module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(stdhttp.Handler) stdhttp.Handler
	register func(phttp.Router)

	svc *scoringsvc.Service
}

// New constructs the scoring module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("scoring"),
		modkit.WithPrefix("/method"),
	}, opts...)...)

	svc := scoringsvc.New(deps)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}

	external := b.Register
	m.register = func(r phttp.Router) {
		scoringhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Service exposes the dispatch service for cross wiring and tests
func (m *Module) Service() *scoringsvc.Service { return m.svc }

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r phttp.Router) {
	r.Route(m.prefix, func(rr phttp.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }
