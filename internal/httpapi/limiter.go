package httpapi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultLimiterIdle is how long a client's bucket lives without requests.
const DefaultLimiterIdle = 10 * time.Minute

type clientBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter rate-limits per remote host. Buckets idle for longer than
// idle are evicted, at most once per idle period.
type ClientLimiter struct {
	mu        sync.Mutex
	m         map[string]*clientBucket
	r         rate.Limit
	b         int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewClientLimiter(reqPerSec float64, burst int) *ClientLimiter {
	return &ClientLimiter{
		m:    make(map[string]*clientBucket),
		r:    rate.Limit(reqPerSec),
		b:    burst,
		idle: DefaultLimiterIdle,
		now:  time.Now,
	}
}

func (cl *ClientLimiter) limiterFor(host string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := cl.now()
	if now.Sub(cl.lastSweep) >= cl.idle {
		for h, b := range cl.m {
			if now.Sub(b.lastSeen) >= cl.idle {
				delete(cl.m, h)
			}
		}
		cl.lastSweep = now
	}

	if b, ok := cl.m[host]; ok {
		b.lastSeen = now
		return b.lim
	}
	b := &clientBucket{lim: rate.NewLimiter(cl.r, cl.b), lastSeen: now}
	cl.m[host] = b
	return b.lim
}

func (cl *ClientLimiter) Allow(r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		host = "_"
	}
	return cl.limiterFor(host).AllowN(cl.now(), 1)
}

// Clients reports how many buckets are held.
func (cl *ClientLimiter) Clients() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.m)
}
