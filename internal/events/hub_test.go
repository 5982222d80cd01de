package events

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"jobcatalog-engine/internal/catalog"
)

func TestHubPublishAndUnsubscribe(t *testing.T) {
	h := NewHub()
	a := h.Subscribe()
	b := h.Subscribe()
	if h.Subscribers() != 2 {
		t.Fatalf("subscribers = %d", h.Subscribers())
	}

	h.Publish(Envelope{Kind: KindPing})
	if got := <-a; got.Kind != KindPing || got.Seq != 1 {
		t.Fatalf("a got %+v", got)
	}
	if got := <-b; got.Seq != 1 {
		t.Fatalf("b got %+v", got)
	}

	h.Unsubscribe(a)
	h.Unsubscribe(a)
	if _, ok := <-a; ok {
		t.Fatal("expected closed channel")
	}
	if h.Subscribers() != 1 {
		t.Fatalf("subscribers = %d", h.Subscribers())
	}
	if e := h.Publish(Envelope{Kind: KindPing}); e.Seq != 2 {
		t.Fatalf("seq = %d", e.Seq)
	}
}

func TestHubDropsForSlowSubscriber(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	for i := 0; i < 25; i++ {
		h.Publish(Envelope{Kind: KindPing})
	}
	if len(ch) != subscriberBuffer {
		t.Fatalf("buffered = %d", len(ch))
	}
}

func TestEnvelopeSSE(t *testing.T) {
	e, err := NewEnvelope(KindViewChanged, "req-1", map[string]any{"visible": 2})
	if err != nil {
		t.Fatal(err)
	}
	e.Seq = 7
	frame := e.SSE()
	if !strings.HasPrefix(frame, "id: 7\nevent: view_changed\ndata: ") || !strings.HasSuffix(frame, "\n\n") {
		t.Fatalf("frame = %q", frame)
	}

	data := strings.TrimSuffix(strings.SplitN(frame, "data: ", 2)[1], "\n\n")
	var got Envelope
	if err := json.Unmarshal([]byte(data), &got); err != nil {
		t.Fatal(err)
	}
	if got.RequestID != "req-1" || string(got.Data) != `{"visible":2}` || got.At.IsZero() {
		t.Fatalf("envelope = %+v", got)
	}

	if _, err := NewEnvelope(KindPing, "", make(chan int)); err == nil {
		t.Fatal("expected encode error")
	}
}

func TestCatalogPublisher(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe()
	defer h.Unsubscribe(sub)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := catalog.NewController(logger, catalog.WithOnChange(CatalogPublisher(h, logger)))
	if err := c.Load([]byte(`[{"Title":"a","Level":"Mid"}]`)); err != nil {
		t.Fatal(err)
	}
	if err := c.SetSort(catalog.SortTitle); err != nil {
		t.Fatal(err)
	}

	first, second := <-sub, <-sub
	if first.Kind != KindCatalogLoaded || second.Kind != KindViewChanged || second.Seq != first.Seq+1 {
		t.Fatalf("got %+v then %+v", first, second)
	}
	var ch catalog.Change
	if err := json.Unmarshal(second.Data, &ch); err != nil {
		t.Fatal(err)
	}
	if ch.Sort != catalog.SortTitle || ch.Total != 1 {
		t.Fatalf("change = %+v", ch)
	}
}

func TestCatalogPublisherDropsStaleChange(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe()
	defer h.Unsubscribe(sub)

	publish := CatalogPublisher(h, slog.New(slog.NewTextHandler(io.Discard, nil)))
	publish(catalog.Change{Version: 2, Kind: catalog.ChangeView, Sort: catalog.SortTitle})
	publish(catalog.Change{Version: 1, Kind: catalog.ChangeView, Sort: catalog.SortTime})
	publish(catalog.Change{Version: 3, Kind: catalog.ChangeView, Sort: catalog.SortNone})

	var versions []uint64
	for len(sub) > 0 {
		var ch catalog.Change
		if err := json.Unmarshal((<-sub).Data, &ch); err != nil {
			t.Fatal(err)
		}
		versions = append(versions, ch.Version)
	}
	if len(versions) != 2 || versions[0] != 2 || versions[1] != 3 {
		t.Fatalf("published versions = %v", versions)
	}
}
