// Package events carries catalog transitions to SSE clients.
package events

import (
	"encoding/json"
	"fmt"
	"time"
)

type Kind string

const (
	KindPing          Kind = "ping"
	KindCatalogLoaded Kind = "catalog_loaded"
	KindViewChanged   Kind = "view_changed"
)

// Envelope is the JSON body of one SSE message. Seq is assigned by the hub.
type Envelope struct {
	Kind      Kind            `json:"type"`
	Seq       uint64          `json:"seq"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func NewEnvelope(kind Kind, reqID string, data any) (Envelope, error) {
	e := Envelope{Kind: kind, At: time.Now().UTC(), RequestID: reqID}
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return Envelope{}, fmt.Errorf("encode %s event: %w", kind, err)
		}
		e.Data = b
	}
	return e, nil
}

// SSE frames the envelope for a text/event-stream response.
func (e Envelope) SSE() string {
	b, _ := json.Marshal(e)
	return fmt.Sprintf("id: %d\nevent: %s\ndata: %s\n\n", e.Seq, e.Kind, b)
}
