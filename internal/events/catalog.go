package events

import (
	"log/slog"
	"sync"

	"jobcatalog-engine/internal/catalog"
)

// CatalogPublisher returns a catalog.WithOnChange hook that forwards every
// transition to the hub. A change older than the last one published is
// dropped, so subscribers never end on a stale state.
func CatalogPublisher(h *Hub, logger *slog.Logger) func(catalog.Change) {
	if logger == nil {
		logger = slog.Default()
	}
	var (
		mu   sync.Mutex
		last uint64
	)
	return func(ch catalog.Change) {
		mu.Lock()
		defer mu.Unlock()
		if ch.Version <= last {
			logger.Debug("events.stale_change", "version", ch.Version, "last", last)
			return
		}
		last = ch.Version

		kind := KindViewChanged
		if ch.Kind == catalog.ChangeLoaded {
			kind = KindCatalogLoaded
		}
		e, err := NewEnvelope(kind, "", ch)
		if err != nil {
			logger.Error("events.encode.failed", "error", err)
			return
		}
		e = h.Publish(e)
		logger.Debug("events.published", "type", e.Kind, "seq", e.Seq, "version", ch.Version, "visible", ch.Visible)
	}
}
