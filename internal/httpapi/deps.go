package httpapi

import (
	"log/slog"
	"sync/atomic"

	"jobcatalog-engine/internal/catalog"
	"jobcatalog-engine/internal/config"
	"jobcatalog-engine/internal/events"
	"jobcatalog-engine/internal/export"
)

type Deps struct {
	Catalog *catalog.Controller
	Hub     *events.Hub
	Export  *export.Service
	Logger  *slog.Logger

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

// maxUploadBytes reads the live config so a saved limit applies without a restart.
func (d Deps) maxUploadBytes() int64 {
	if d.CfgVal != nil {
		if cfg, ok := d.CfgVal.Load().(config.Config); ok && cfg.Catalog.MaxUploadBytes > 0 {
			return cfg.Catalog.MaxUploadBytes
		}
	}
	return config.Default().Catalog.MaxUploadBytes
}
