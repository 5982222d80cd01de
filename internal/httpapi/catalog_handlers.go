package httpapi

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"jobcatalog-engine/internal/catalog"
)

type CatalogHandler struct {
	Catalog  *catalog.Controller
	MaxBytes func() int64
	Logger   *slog.Logger
}

// Upload replaces the catalog with the JSON array in the request body.
func (h CatalogHandler) Upload(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.MaxBytes()))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if err := h.Catalog.Load(body); err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "count": h.Catalog.Len()})
}

// UploadForm is Upload for the page's multipart file input.
func (h CatalogHandler) UploadForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes())
	f, _, err := r.FormFile("file")
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		writeErr(w, r, err)
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "missing_file", "Please select a JSON file to upload!")
		return
	}
	defer f.Close()

	body, err := io.ReadAll(f)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if err := h.Catalog.Load(body); err != nil {
		h.Logger.Info("catalog.upload.rejected", "request_id", RequestIDFrom(r.Context()), "error", err)
		WriteError(w, r, http.StatusBadRequest, "validation_failed", "Invalid JSON file format. Please upload a valid file.")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h CatalogHandler) State(w http.ResponseWriter, r *http.Request) {
	s := h.Catalog.Snapshot()
	writeJSON(w, map[string]any{
		"state":     s.State,
		"total":     s.Total,
		"visible":   len(s.View),
		"loaded_at": s.LoadedAt,
		"criteria":  s.Criteria,
		"sort":      s.Sort,
	})
}
