// file: services/ratelimit_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fixedClock lets tests step the limiter's view of time.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func newTestLimiter(start time.Time) (*MemoryLimiter, *fixedClock) {
	clock := &fixedClock{now: start}
	l := NewMemoryLimiter(time.Hour, 3)
	l.now = clock.Now
	return l, clock
}

func TestMemoryLimiter_AllowsUpToMax(t *testing.T) {
	l, _ := newTestLimiter(time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))

	assert.True(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"), "fourth attempt within the window must be refused")
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("1.2.3.4"))
	}
	assert.False(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("5.6.7.8"), "a different source keeps its own budget")
}

func TestMemoryLimiter_LazyWindowReset(t *testing.T) {
	start := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	l, clock := newTestLimiter(start)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("1.2.3.4"))
	}
	assert.False(t, l.Allow("1.2.3.4"))

	// just before expiry the refusal holds
	clock.now = start.Add(time.Hour)
	assert.False(t, l.Allow("1.2.3.4"))

	// first request after expiry starts a fresh window of count 1
	clock.now = start.Add(time.Hour + time.Second)
	assert.True(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"))
}
