package httpapi

import (
	"net/http"

	"jobcatalog-engine/internal/catalog"
)

type HealthHandler struct {
	Catalog *catalog.Controller
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"ok":    true,
		"state": h.Catalog.State().String(),
		"jobs":  h.Catalog.Len(),
	})
}
