package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"beneficiary-registry/pkg/response"

	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a client's bucket survives without requests.
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware applies a token bucket per client IP. Buckets idle for
// longer than limiterIdleTTL are evicted.
type RateLimitMiddleware struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	rate      rate.Limit
	burst     int
	trustXFF  bool
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimitMiddleware builds the limiter. X-Forwarded-For and X-Real-IP
// are only honoured when trustProxyHeaders is set, i.e. behind a proxy that
// overwrites them.
func NewRateLimitMiddleware(rps float64, burst int, trustProxyHeaders bool) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiters: make(map[string]*clientLimiter),
		rate:     rate.Limit(rps),
		burst:    burst,
		trustXFF: trustProxyHeaders,
		now:      time.Now,
	}
}

func (m *RateLimitMiddleware) limiter(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) >= limiterIdleTTL {
		for key, client := range m.limiters {
			if now.Sub(client.lastSeen) >= limiterIdleTTL {
				delete(m.limiters, key)
			}
		}
		m.lastSweep = now
	}

	client, exists := m.limiters[ip]
	if !exists {
		client = &clientLimiter{limiter: rate.NewLimiter(m.rate, m.burst)}
		m.limiters[ip] = client
	}
	client.lastSeen = now
	return client.limiter
}

func (m *RateLimitMiddleware) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.limiters)
}

func (m *RateLimitMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A non-positive rate disables limiting.
		if m.rate <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ip := remoteIP(r)
		if m.trustXFF {
			ip = clientIP(r)
		}

		if !m.limiter(ip).Allow() {
			w.Header().Set("Retry-After", "1")
			response.TooManyRequests(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP prefers proxy headers over the connection address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return remoteIP(r)
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
