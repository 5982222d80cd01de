package httpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientLimiterEvictsIdleClients(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cl := NewClientLimiter(1, 1)
	cl.now = func() time.Time { return clock }

	req := func(host string) bool {
		r := httptest.NewRequest(http.MethodGet, "/jobs", nil)
		r.RemoteAddr = host + ":5000"
		return cl.Allow(r)
	}

	for i := 0; i < 50; i++ {
		req(fmt.Sprintf("10.0.0.%d", i))
	}
	if cl.Clients() != 50 {
		t.Fatalf("clients = %d", cl.Clients())
	}
	if req("10.0.0.1") {
		t.Fatal("10.0.0.1 should have spent its burst")
	}

	clock = clock.Add(DefaultLimiterIdle / 2)
	req("10.0.0.1")

	clock = clock.Add(DefaultLimiterIdle/2 + time.Second)
	if !req("10.0.0.99") {
		t.Fatal("new client should be allowed")
	}
	// only 10.0.0.1 (seen half an idle period ago) and the new client remain
	if cl.Clients() != 2 {
		t.Fatalf("clients after sweep = %d", cl.Clients())
	}
}
