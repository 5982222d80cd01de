package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{Catalog: d.Catalog}.Health,
	}))

	// Catalog
	cat := CatalogHandler{Catalog: d.Catalog, MaxBytes: d.maxUploadBytes, Logger: d.logger()}
	mux.HandleFunc("/catalog", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: cat.Upload,
	}))
	mux.HandleFunc("/catalog/upload", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: cat.UploadForm,
	}))
	mux.HandleFunc("/catalog/state", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cat.State,
	}))

	// Jobs
	jh := JobsHandler{Catalog: d.Catalog}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/jobs/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.GetByPath, // /jobs/{id} and /jobs/{id}/detail
	}))

	// View
	vh := ViewHandler{Catalog: d.Catalog}
	mux.HandleFunc("/view", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: vh.Form,
	}))
	mux.HandleFunc("/view/filter", methodMux(map[string]http.HandlerFunc{
		http.MethodPut: vh.SetFilter,
	}))
	mux.HandleFunc("/view/sort", methodMux(map[string]http.HandlerFunc{
		http.MethodPut: vh.SetSort,
	}))
	mux.HandleFunc("/filters", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: vh.Filters,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	xh := ExportHandler{Catalog: d.Catalog, Exporter: d.Export}
	mux.HandleFunc("/export", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: xh.Export,
	}))

	ph := PageHandler{Catalog: d.Catalog}
	mux.HandleFunc("/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Index,
	}))

	return mux
}
