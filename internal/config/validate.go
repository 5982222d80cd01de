package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// NormalizeAndValidate returns a normalized copy along with any problems.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.App.Host = strings.TrimSpace(out.App.Host)
	out.Catalog.File = strings.TrimSpace(out.Catalog.File)
	out.HTTP.AuthUser = strings.TrimSpace(out.HTTP.AuthUser)
	out.Log.Level = strings.ToLower(strings.TrimSpace(out.Log.Level))
	out.Export.Sheet = strings.TrimSpace(out.Export.Sheet)
	if out.Catalog.File != "" {
		out.Catalog.File = filepath.Clean(out.Catalog.File)
	}

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if out.App.Host == "" {
		res.addErr("app.host is required")
	} else if out.App.Host != "127.0.0.1" && out.App.Host != "localhost" && out.App.Host != "::1" {
		res.addWarn("app.host is %q; the engine is meant for local use.", out.App.Host)
	}

	if out.Catalog.MaxUploadBytes <= 0 {
		res.addErr("catalog.max_upload_bytes must be > 0")
	}
	if out.Catalog.WatchSeconds < 0 {
		res.addErr("catalog.watch_seconds must be >= 0")
	} else if out.Catalog.WatchSeconds > 0 && out.Catalog.File == "" {
		res.addWarn("catalog.watch_seconds is set but catalog.file is empty; nothing will be watched.")
	}

	if out.HTTP.RatePerSec < 0 {
		res.addErr("http.rate_per_sec must be >= 0")
	}
	if out.HTTP.RatePerSec > 0 && out.HTTP.Burst <= 0 {
		res.addErr("http.burst must be > 0 when http.rate_per_sec is set")
	}

	if out.Log.Level != "" && !logLevels[out.Log.Level] {
		res.addErr("log.level must be one of debug, info, warn, error")
	}

	if out.Export.Sheet == "" {
		res.addWarn("export.sheet is empty; defaulting to \"Jobs\".")
		out.Export.Sheet = "Jobs"
	} else if len(out.Export.Sheet) > 31 {
		res.addErr("export.sheet must be at most 31 characters")
	}

	return out, res
}
