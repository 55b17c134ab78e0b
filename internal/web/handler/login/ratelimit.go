package login

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

// RateLimiter tracks failed login attempts per email and host pair.
// A successful login clears the key. The clock is injectable for tests.
type RateLimiter struct {
	mu       sync.Mutex
	now      func() time.Time
	attempts map[string][]time.Time
}

// NewRateLimiter creates a rate limiter using the wall clock.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		now:      time.Now,
		attempts: make(map[string][]time.Time),
	}
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

// Allowed reports whether another login attempt may proceed for the
// email and host pair.
func (r *RateLimiter) Allowed(email, host string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.prune(limiterKey(email, host))) < maxAttempts
}

// Failure records a failed login attempt.
func (r *RateLimiter) Failure(email, host string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := limiterKey(email, host)
	r.attempts[key] = append(r.prune(key), r.now())
}

// Success clears the failure history for the email and host pair.
func (r *RateLimiter) Success(email, host string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.attempts, limiterKey(email, host))
}

// RetryAfter returns how long until the oldest counted failure leaves the
// window. Zero when the key is not limited.
func (r *RateLimiter) RetryAfter(email, host string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	recent := r.prune(limiterKey(email, host))
	if len(recent) < maxAttempts {
		return 0
	}

	return recent[0].Add(attemptWindow).Sub(r.now())
}

// prune drops attempts outside the window. Caller holds the lock.
func (r *RateLimiter) prune(key string) []time.Time {
	cutoff := r.now().Add(-attemptWindow)

	recent := r.attempts[key][:0]
	for _, at := range r.attempts[key] {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}

	if len(recent) == 0 {
		delete(r.attempts, key)
		return nil
	}

	r.attempts[key] = recent

	return recent
}
