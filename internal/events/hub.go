package events

import "sync"

const subscriberBuffer = 10

// Hub fans envelopes out to SSE subscribers. A subscriber whose buffer is
// full misses the envelope; publishers never block.
type Hub struct {
	mu      sync.Mutex
	clients map[chan Envelope]struct{}
	seq     uint64
}

func NewHub() *Hub {
	return &Hub{clients: make(map[chan Envelope]struct{})}
}

func (h *Hub) Subscribe() chan Envelope {
	ch := make(chan Envelope, subscriberBuffer)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe closes ch. Calling it twice is a no-op.
func (h *Hub) Unsubscribe(ch chan Envelope) {
	h.mu.Lock()
	_, ok := h.clients[ch]
	delete(h.clients, ch)
	h.mu.Unlock()
	if ok {
		close(ch)
	}
}

// Publish stamps e with the next sequence number and returns it.
func (h *Hub) Publish(e Envelope) Envelope {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	e.Seq = h.seq
	for ch := range h.clients {
		select {
		case ch <- e:
		default:
		}
	}
	return e
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
