package web

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// loginLimiter throttles login attempts per client address to slow
// down credential stuffing. Entries are created lazily and kept for
// the process lifetime; the key space is bounded by distinct clients.
type loginLimiter struct {
	mu      sync.Mutex
	clients map[string]*rate.Limiter
	perMin  float64
	burst   int
}

func newLoginLimiter(perMinute, burst int) *loginLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 5
	}
	return &loginLimiter{
		clients: make(map[string]*rate.Limiter),
		perMin:  float64(perMinute),
		burst:   burst,
	}
}

// allow reports whether the client may attempt a login now
func (l *loginLimiter) allow(r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	l.mu.Lock()
	limiter, ok := l.clients[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.perMin/60.0), l.burst)
		l.clients[host] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}
