package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientLimiter throttles requests per client IP with a token bucket.
// A zero or negative rate disables limiting entirely.
type clientLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientBucket
	perMin   int
	lastSwep time.Time
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(requestsPerMinute int) *clientLimiter {
	return &clientLimiter{
		clients:  make(map[string]*clientBucket),
		perMin:   requestsPerMinute,
		lastSwep: time.Now(),
	}
}

func (l *clientLimiter) allow(ip string) bool {
	if l.perMin <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	// Drop buckets idle for over an hour so the map stays small.
	if now.Sub(l.lastSwep) > time.Hour {
		for k, b := range l.clients {
			if now.Sub(b.lastSeen) > time.Hour {
				delete(l.clients, k)
			}
		}
		l.lastSwep = now
	}

	b, ok := l.clients[ip]
	if !ok {
		b = &clientBucket{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMin)), l.perMin),
		}
		l.clients[ip] = b
	}
	b.lastSeen = now
	return b.limiter.Allow()
}

func (l *clientLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientIP(r)) {
			writeRateLimited(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
