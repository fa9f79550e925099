package api

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	idleClientThreshold = 1 * time.Hour
	cleanupInterval     = 30 * time.Minute
)

type clientLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client. Each bucket holds up to
// limit tokens and refills at limit tokens per window.
type RateLimiter struct {
	mu          sync.Mutex
	limit       int
	every       rate.Limit
	clients     map[string]*clientLimiter
	stopCleanup chan struct{}
	stopOnce    sync.Once
	now         func() time.Time
}

// NewRateLimiter starts a limiter allowing bursts of limit requests, refilled
// at limit per window. Call Stop to end the background cleanup.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	every := rate.Limit(0)
	if limit > 0 && window > 0 {
		every = rate.Every(window / time.Duration(limit))
	}
	rl := &RateLimiter{
		limit:       limit,
		every:       every,
		clients:     make(map[string]*clientLimiter),
		stopCleanup: make(chan struct{}),
		now:         time.Now,
	}
	go rl.cleanupLoop()
	return rl
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stopCleanup:
			return
		}
	}
}

// cleanup drops clients idle for longer than idleClientThreshold
func (r *RateLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for ip, c := range r.clients {
		if now.Sub(c.lastSeen) > idleClientThreshold {
			delete(r.clients, ip)
		}
	}
}

// Stop ends the cleanup goroutine; safe to call more than once
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCleanup) })
}

// Allow takes one token from the client's bucket and reports whether one was available
func (r *RateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	c, exists := r.clients[ip]
	if !exists {
		c = &clientLimiter{lim: rate.NewLimiter(r.every, r.limit)}
		r.clients[ip] = c
	}
	c.lastSeen = now

	return c.lim.AllowN(now, 1)
}

// RateLimitMiddleware rejects clients that exhaust their bucket with 429
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiter.Allow(ip) {
				writeJSON(w, http.StatusTooManyRequests, ErrorResponse{
					Error:     "Rate limit exceeded",
					RequestID: RequestIDFromContext(r.Context()),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
