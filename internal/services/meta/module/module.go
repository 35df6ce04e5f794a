// Package module wires the meta endpoints into the API
package module

import (
	stdhttp "net/http"
	"time"

	"scorebox/internal/modkit"
	phttp "scorebox/internal/platform/net/http"
	str "scorebox/internal/platform/strings"
	metahttp "scorebox/internal/services/meta/http"
)

// Module implements the meta module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(stdhttp.Handler) stdhttp.Handler
	register func(phttp.Router)
}

// New constructs the meta module
func New(deps modkit.Deps, serviceName string, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
	}

	hd := metahttp.Deps{
		ServiceName: serviceName,
		StartedAt:   time.Now(),
		KV:          deps.KV,
	}

	external := b.Register
	m.register = func(r phttp.Router) {
		metahttp.Register(r, hd)
		if external != nil {
			external(r)
		}
	}
	return m
}

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
