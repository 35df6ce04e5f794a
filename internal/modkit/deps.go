package modkit

import (
	"scorebox/internal/platform/config"
	"scorebox/internal/platform/logger"
	"scorebox/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	KV  store.KV
}
