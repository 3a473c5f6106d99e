// Package services: services/ratelimit.go
package services

import (
	"sync"
	"time"

	"go-con-board/logger"
)

// Limiter answers whether a caller identified by key may proceed.
// The concrete store behind it is injectable; the in-memory limiter below
// only bounds a single process, so horizontally scaled deployments should
// back this interface with a shared counter instead.
type Limiter interface {
	Allow(key string) bool
}

type limitEntry struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is a fixed-window counter keyed by caller identity.
// The window resets lazily: the first request after expiry starts a fresh
// window with count 1. State lives in process memory and is lost on restart.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*limitEntry
	window  time.Duration
	max     int
	now     func() time.Time
}

// NewMemoryLimiter creates a limiter permitting max requests per window.
func NewMemoryLimiter(window time.Duration, max int) *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*limitEntry),
		window:  window,
		max:     max,
		now:     time.Now,
	}
}

// Allow records one attempt for key and reports whether it is within the
// window's budget.
func (l *MemoryLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, exists := l.entries[key]
	if !exists || now.After(entry.resetAt) {
		l.entries[key] = &limitEntry{count: 1, resetAt: now.Add(l.window)}
		return true
	}

	if entry.count >= l.max {
		logger.Warn.Printf("rate limit exceeded for %s", key)
		return false
	}

	entry.count++
	return true
}
