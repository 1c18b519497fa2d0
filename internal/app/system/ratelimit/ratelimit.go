// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter provides rate limiting using a sliding window algorithm.
// It is safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int
	duration time.Duration
	cleanup  time.Duration
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a rate limiter allowing limit requests per duration.
func New(limit int, duration time.Duration) *Limiter {
	l := &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
		cleanup:  duration * 2,
	}
	go l.cleanupLoop()
	return l
}

// Allow checks if a request from the given key should be allowed.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, exists := l.windows[key]

	if !exists || now.After(w.expiresAt) {
		l.windows[key] = &window{
			count:     1,
			expiresAt: now.Add(l.duration),
		}
		return true
	}

	if w.count >= l.limit {
		return false
	}

	w.count++
	return true
}

// Reset clears the rate limit for a specific key, e.g. after a
// successful sign-in.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// cleanupLoop periodically removes expired entries to prevent memory leaks.
func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.cleanup)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, w := range l.windows {
			if now.After(w.expiresAt) {
				delete(l.windows, key)
			}
		}
		l.mu.Unlock()
	}
}

// ClientIP extracts the client IP from an HTTP request. It checks
// X-Forwarded-For and X-Real-IP headers first, then falls back to
// RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			ip := strings.TrimSpace(parts[0])
			if ip != "" {
				return ip
			}
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// AuthLimiter throttles credential and one-time-code endpoints. It
// tracks both IP-based and email-based limits so neither a single IP
// hammering many accounts nor many IPs hammering one account gets
// through.
type AuthLimiter struct {
	ipLimiter    *Limiter
	emailLimiter *Limiter
}

// NewAuthLimiter creates a limiter configured for sign-in and
// verification endpoints: 10 attempts per IP per minute, 5 attempts
// per email per 5 minutes.
func NewAuthLimiter() *AuthLimiter {
	return &AuthLimiter{
		ipLimiter:    New(10, time.Minute),
		emailLimiter: New(5, 5*time.Minute),
	}
}

// Check verifies if an attempt should be allowed. Returns (allowed,
// reason) where reason explains why it was blocked.
func (al *AuthLimiter) Check(r *http.Request, email string) (bool, string) {
	if !al.ipLimiter.Allow(ClientIP(r)) {
		return false, "too many attempts, wait a minute before trying again"
	}

	if email != "" {
		if !al.emailLimiter.Allow(strings.ToLower(strings.TrimSpace(email))) {
			return false, "too many attempts for this account, wait a few minutes"
		}
	}

	return true, ""
}

// ResetEmail clears the rate limit for an email after a successful
// sign-in.
func (al *AuthLimiter) ResetEmail(email string) {
	if email != "" {
		al.emailLimiter.Reset(strings.ToLower(strings.TrimSpace(email)))
	}
}
