package login

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsUnderLimit(t *testing.T) {
	limiter := NewRateLimiter()

	for i := 0; i < maxAttempts-1; i++ {
		limiter.Failure("a@example.com", "host1")
	}

	assert.True(t, limiter.Allowed("a@example.com", "host1"))
}

func TestRateLimiterBlocksAtLimit(t *testing.T) {
	limiter := NewRateLimiter()

	for i := 0; i < maxAttempts; i++ {
		limiter.Failure("a@example.com", "host1")
	}

	assert.False(t, limiter.Allowed("a@example.com", "host1"))
	assert.Greater(t, limiter.RetryAfter("a@example.com", "host1"), time.Duration(0))
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewRateLimiter()

	for i := 0; i < maxAttempts; i++ {
		limiter.Failure("a@example.com", "host1")
	}

	// same email from another host, and another email from the same host
	assert.True(t, limiter.Allowed("a@example.com", "host2"))
	assert.True(t, limiter.Allowed("b@example.com", "host1"))
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiterWithClock(func() time.Time { return now })

	for i := 0; i < maxAttempts; i++ {
		limiter.Failure("a@example.com", "host1")
	}

	assert.False(t, limiter.Allowed("a@example.com", "host1"))

	// advance past the window
	now = now.Add(attemptWindow + time.Second)
	assert.True(t, limiter.Allowed("a@example.com", "host1"))
}

func TestRateLimiterSuccessClears(t *testing.T) {
	limiter := NewRateLimiter()

	for i := 0; i < maxAttempts; i++ {
		limiter.Failure("a@example.com", "host1")
	}

	limiter.Success("a@example.com", "host1")
	assert.True(t, limiter.Allowed("a@example.com", "host1"))
	assert.Zero(t, limiter.RetryAfter("a@example.com", "host1"))
}
