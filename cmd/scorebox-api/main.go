package main

import (
	"context"

	"scorebox/internal/platform/config"
	"scorebox/internal/platform/logger"
	phttp "scorebox/internal/platform/net/http"
	"scorebox/internal/platform/store"

	"scorebox/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (API_*)
	root := config.New()
	apiCfg := root.Prefix("API_")
	kvCfg := root.Prefix("REDIS_") // kv seam lives under REDIS_*

	// bring up logging early
	logger.Init(logger.FromEnv())
	l := logger.Get()

	// open the platform store (redis adapter behind the KV seam)
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: api.ServiceName,
			Redis: store.RedisConfig{
				Enabled:     true,
				Addr:        kvCfg.MayString("ADDR", "localhost:6379"),
				DB:          kvCfg.MayInt("DB", 0),
				DialTimeout: kvCfg.MayDuration("DIAL_TIMEOUT", 0),
				ReadTimeout: kvCfg.MayDuration("READ_TIMEOUT", 0),
				Retries:     kvCfg.MayInt("RETRIES", store.DefaultRetries),
				RetryDelay:  kvCfg.MayDuration("RETRY_DELAY", store.DefaultRetryDelay),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads API_PORT / API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
			EnableMetrics:  apiCfg.MayBool("METRICS", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
