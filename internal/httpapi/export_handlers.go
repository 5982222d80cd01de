package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"jobcatalog-engine/internal/catalog"
	"jobcatalog-engine/internal/export"
	"jobcatalog-engine/internal/store"
)

type ExportHandler struct {
	Catalog  *catalog.Controller
	Exporter *export.Service
}

// Export downloads the current view as xlsx (default), csv or sqlite.
func (h ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = export.FormatXLSX
	}
	name := "jobs-" + time.Now().UTC().Format("20060102-150405") + "." + format

	snap := h.Catalog.Snapshot()
	var buf bytes.Buffer
	var ct string

	switch format {
	case export.FormatXLSX:
		b, err := h.Exporter.XLSX(snap.View)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		buf.Write(b)
		ct = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case export.FormatCSV:
		if err := h.Exporter.CSV(&buf, snap.View); err != nil {
			writeErr(w, r, err)
			return
		}
		ct = "text/csv; charset=utf-8"
	case export.FormatSQLite:
		dir, err := os.MkdirTemp("", "jobcatalog-export-")
		if err != nil {
			writeErr(w, r, err)
			return
		}
		defer os.RemoveAll(dir)
		path := filepath.Join(dir, "view.db")
		if _, err := store.ExportFile(r.Context(), path, snap); err != nil {
			writeErr(w, r, err)
			return
		}
		b, err := os.ReadFile(path)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		buf.Write(b)
		ct = "application/vnd.sqlite3"
	default:
		WriteError(w, r, http.StatusBadRequest, "bad_format", fmt.Sprintf("unknown export format %q", format))
		return
	}

	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = buf.WriteTo(w)
}
