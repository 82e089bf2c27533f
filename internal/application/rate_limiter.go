package application

import (
	"fmt"
	"sync"
	"time"
)

// rateLimitEntry tracks request counts inside one window.
type rateLimitEntry struct {
	count     int
	resetTime time.Time
}

// RateLimiter is a fixed-window limiter keyed by caller identifier.
// The quote preview endpoint is unauthenticated and recomputed on every
// form change, so it gets a per-IP budget.
type RateLimiter struct {
	limits map[string]*rateLimitEntry
	mu     sync.Mutex
	window time.Duration
	limit  int
}

// NewRateLimiter creates a limiter allowing limit requests per window.
func NewRateLimiter(window time.Duration, limit int) *RateLimiter {
	rl := &RateLimiter{
		limits: make(map[string]*rateLimitEntry),
		window: window,
		limit:  limit,
	}

	go rl.cleanupLoop()

	return rl
}

// Allow reports whether a request from the identifier is within budget.
// An empty identifier shares the anonymous bucket.
func (rl *RateLimiter) Allow(identifier string) (bool, error) {
	if identifier == "" {
		identifier = "anonymous"
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	entry, exists := rl.limits[identifier]

	if !exists || now.After(entry.resetTime) {
		rl.limits[identifier] = &rateLimitEntry{
			count:     1,
			resetTime: now.Add(rl.window),
		}
		return true, nil
	}

	if entry.count >= rl.limit {
		wait := entry.resetTime.Sub(now).Round(time.Second)
		return false, fmt.Errorf("request limit exceeded, try again in %v", wait)
	}

	entry.count++
	return true, nil
}

// cleanupLoop drops expired entries so the map does not grow unbounded.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, entry := range rl.limits {
			if now.After(entry.resetTime) {
				delete(rl.limits, key)
			}
		}
		rl.mu.Unlock()
	}
}
