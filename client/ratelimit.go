package client

import (
	"fmt"
	"sync"
	"time"
)

const (
	// maxAttempts is how many failed logins are tolerated per key
	// before further attempts are rejected.
	maxAttempts = 5

	// attemptWindow is how long failed attempts count against the key.
	attemptWindow = 5 * time.Minute
)

// RateLimiter blocks login attempts after repeated failures, keyed by the
// email and host pair so one account's lockout never affects another.
// A successful login clears the key. The clock is injectable for tests.
type RateLimiter struct {
	mu       sync.Mutex
	now      func() time.Time
	attempts map[string][]time.Time
}

// NewRateLimiter creates a rate limiter using the wall clock.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithClock(time.Now)
}

// NewRateLimiterWithClock creates a rate limiter with a custom clock.
func NewRateLimiterWithClock(now func() time.Time) *RateLimiter {
	return &RateLimiter{
		now:      now,
		attempts: make(map[string][]time.Time),
	}
}

func limiterKey(email, host string) string {
	return fmt.Sprintf("%s|%s", email, host)
}

// Allowed reports whether another attempt for the key may proceed.
func (r *RateLimiter) Allowed(email, host string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := limiterKey(email, host)
	r.prune(key)

	return len(r.attempts[key]) < maxAttempts
}

// Failure records a failed attempt against the key.
func (r *RateLimiter) Failure(email, host string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := limiterKey(email, host)
	r.prune(key)
	r.attempts[key] = append(r.attempts[key], r.now())
}

// Success clears all recorded failures for the key.
func (r *RateLimiter) Success(email, host string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.attempts, limiterKey(email, host))
}

// RetryAfter returns how long until the key's oldest counted failure falls
// out of the window, or zero when the key is not blocked.
func (r *RateLimiter) RetryAfter(email, host string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := limiterKey(email, host)
	r.prune(key)

	stamps := r.attempts[key]
	if len(stamps) < maxAttempts {
		return 0
	}

	return attemptWindow - r.now().Sub(stamps[0])
}

// prune drops attempts older than the window. Callers hold the mutex.
func (r *RateLimiter) prune(key string) {
	cutoff := r.now().Add(-attemptWindow)

	stamps := r.attempts[key]

	kept := stamps[:0]
	for _, stamp := range stamps {
		if stamp.After(cutoff) {
			kept = append(kept, stamp)
		}
	}

	if len(kept) == 0 {
		delete(r.attempts, key)

		return
	}

	r.attempts[key] = kept
}
