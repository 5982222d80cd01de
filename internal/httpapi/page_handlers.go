package httpapi

import (
	"bytes"
	"net/http"

	"jobcatalog-engine/internal/catalog"
	"jobcatalog-engine/internal/render"
)

type PageHandler struct {
	Catalog *catalog.Controller
}

func (h PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	var buf bytes.Buffer
	if err := render.Page(&buf, render.NewPageData(h.Catalog)); err != nil {
		writeErr(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
