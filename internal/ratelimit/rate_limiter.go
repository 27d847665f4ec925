package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/raaihank/owoify/internal/config"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client
type RateLimiter struct {
	config  config.RateLimitConfig
	buckets map[string]*bucket
	mu      sync.RWMutex
	now     func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates a new rate limiter
func New(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		config:  cfg,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow checks if a request from the given client is allowed
func (r *RateLimiter) Allow(client string) bool {
	if !r.config.Enabled {
		return true
	}

	now := r.now()
	b := r.getBucket(client, now)
	return b.limiter.AllowN(now, 1)
}

// Clients returns the number of tracked clients
func (r *RateLimiter) Clients() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.buckets)
}

// getBucket gets or creates a token bucket for a client
func (r *RateLimiter) getBucket(client string, now time.Time) *bucket {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, exists := r.buckets[client]
	if !exists {
		b = &bucket{
			limiter: rate.NewLimiter(rate.Limit(r.config.RequestsPerSecond), r.config.Burst),
		}
		r.buckets[client] = b
	}
	b.lastSeen = now

	return b
}

// CleanupIdle removes buckets that have not been used for IdleTTL
func (r *RateLimiter) CleanupIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.config.IdleTTL)
	for client, b := range r.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(r.buckets, client)
		}
	}
}

// StartCleanup runs CleanupIdle periodically until ctx is done
func (r *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.CleanupIdle()
			}
		}
	}()
}
