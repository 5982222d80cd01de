package httpapi

import (
	"io"
	"net/http"
	"time"

	"jobcatalog-engine/internal/events"
)

type EventsHandler struct {
	Hub *events.Hub
	// KeepAlive is the comment-line interval; zero means 25s.
	KeepAlive time.Duration
}

// ServeSSE streams hub envelopes until the client goes away.
func (h EventsHandler) ServeSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, r, http.StatusInternalServerError, "stream_unsupported", "Streaming unsupported")
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(ch)

	hello, _ := events.NewEnvelope(events.KindPing, RequestIDFrom(r.Context()), nil)
	_, _ = io.WriteString(w, hello.SSE())
	flusher.Flush()

	every := h.KeepAlive
	if every <= 0 {
		every = 25 * time.Second
	}
	keepAlive := time.NewTicker(every)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			_, _ = io.WriteString(w, ": keep-alive\n\n")
		case e, ok := <-ch:
			if !ok {
				return
			}
			_, _ = io.WriteString(w, e.SSE())
		}
		flusher.Flush()
	}
}
