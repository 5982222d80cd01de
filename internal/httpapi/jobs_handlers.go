package httpapi

import (
	"net/http"
	"strings"

	"jobcatalog-engine/internal/catalog"
	"jobcatalog-engine/internal/domain"
	"jobcatalog-engine/internal/render"
)

type JobsHandler struct {
	Catalog *catalog.Controller
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Catalog.View())
}

type jobDetail struct {
	Job        domain.Job `json:"job"`
	DetailHTML string     `json:"detail_html"`
}

// GetByPath serves /jobs/{id} as JSON and /jobs/{id}/detail as HTML.
func (h JobsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/jobs/"), "/")
	id, suffix, _ := strings.Cut(rest, "/")
	if id == "" || (suffix != "" && suffix != "detail") {
		http.NotFound(w, r)
		return
	}

	j, ok := h.Catalog.Job(id)
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "job not found")
		return
	}

	if suffix == "detail" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := render.Detail(w, j); err != nil {
			writeErr(w, r, err)
		}
		return
	}
	writeJSON(w, jobDetail{Job: j, DetailHTML: j.DetailHTML()})
}
