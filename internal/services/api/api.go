// Package api provides the HTTP API for the application
package api

import (
	"time"

	"scorebox/internal/modkit"
	"scorebox/internal/platform/config"
	"scorebox/internal/platform/logger"
	phttp "scorebox/internal/platform/net/http"
	"scorebox/internal/platform/net/middleware"
	"scorebox/internal/platform/store"

	metamod "scorebox/internal/services/meta/module"
	scoringmod "scorebox/internal/services/scoring/module"
)

// ServiceName identifies this binary in meta responses and metrics
const ServiceName = "scorebox-api"

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableProfiler bool
	EnableMetrics  bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Log: *opt.Logger,
		Cfg: opt.Config,
		KV:  opt.Store.KV,
	}

	// common middleware stack, order matters: id and ip first, recovery
	// before logging so panics are logged with a status
	r.Use(
		middleware.RealIP(),
		middleware.RequestID(),
		middleware.RecoverJSON,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{
			Slow: opt.Config.MayDuration("SLOW", 500*time.Millisecond),
		}),
		middleware.CORS(middleware.CORSOptions{
			AllowedOrigins: opt.Config.MayCSV("CORS_ORIGINS", []string{"*"}),
		}),
		middleware.Heartbeat("/healthz"),
		middleware.Timeout(opt.Config.MayDuration("TIMEOUT", 30*time.Second)),
	)

	if opt.EnableMetrics {
		m := middleware.NewMetrics("scorebox")
		r.Use(m.Middleware())
		r.Handle("/metrics", m.Handler())
	}

	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	mods := []modkit.Module{
		metamod.New(deps, ServiceName),
		scoringmod.New(deps),
	}

	for _, m := range mods {
		m.MountRoutes(r)
	}
}
