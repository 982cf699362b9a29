package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// RateLimitMiddleware provides basic per-IP rate limiting
type RateLimitMiddleware struct {
	requests  map[string][]int64 // IP -> timestamps
	lastSweep int64
	mu        sync.Mutex
	now       func() time.Time
}

// NewRateLimitMiddleware creates a new rate limiting middleware
func NewRateLimitMiddleware() *RateLimitMiddleware {
	return &RateLimitMiddleware{
		requests: make(map[string][]int64),
		now:      time.Now,
	}
}

// allow records a request from clientIP and reports whether it fits in the window.
func (m *RateLimitMiddleware) allow(clientIP string, maxRequests, windowSeconds int) bool {
	now := m.now().Unix()
	windowStart := now - int64(windowSeconds)

	m.mu.Lock()
	defer m.mu.Unlock()

	if now-m.lastSweep >= int64(windowSeconds) {
		m.sweep(windowStart)
		m.lastSweep = now
	}

	valid := m.requests[clientIP][:0]
	for _, ts := range m.requests[clientIP] {
		if ts > windowStart {
			valid = append(valid, ts)
		}
	}
	if len(valid) >= maxRequests {
		m.requests[clientIP] = valid
		return false
	}
	m.requests[clientIP] = append(valid, now)
	return true
}

// sweep drops clients with no request inside the window, so idle IPs do not
// accumulate. Timestamps are appended in order, so the last one is the newest.
func (m *RateLimitMiddleware) sweep(windowStart int64) {
	for ip, stamps := range m.requests {
		if len(stamps) == 0 || stamps[len(stamps)-1] <= windowStart {
			delete(m.requests, ip)
		}
	}
}

// RateLimit applies rate limiting based on IP address. Health checks are
// never limited.
func (m *RateLimitMiddleware) RateLimit(maxRequests int, windowSeconds int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := getClientIP(r)
			if !m.allow(clientIP, maxRequests, windowSeconds) {
				log.WithFields(log.Fields{"ip": clientIP, "path": r.URL.Path}).Warn("Rate limit exceeded")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	// Check for forwarded headers first
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	// Fall back to remote address
	ip := r.RemoteAddr
	if colonIndex := strings.LastIndex(ip, ":"); colonIndex != -1 {
		ip = ip[:colonIndex]
	}
	return ip
}
