package resilience

import (
	"context"
	"sync"
)

// PerSourceLimiter manages separate rate limiters for each registry host.
type PerSourceLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*TokenBucket
	config   TokenBucketConfig
}

// NewPerSourceLimiter creates a per-source rate limiter.
func NewPerSourceLimiter(config TokenBucketConfig) *PerSourceLimiter {
	return &PerSourceLimiter{
		limiters: make(map[string]*TokenBucket),
		config:   config,
	}
}

// getLimiter returns the rate limiter for a source, creating it if needed.
func (psl *PerSourceLimiter) getLimiter(source string) *TokenBucket {
	psl.mu.RLock()
	limiter, exists := psl.limiters[source]
	psl.mu.RUnlock()

	if exists {
		return limiter
	}

	psl.mu.Lock()
	defer psl.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists = psl.limiters[source]; exists {
		return limiter
	}

	limiter = NewTokenBucket(psl.config)
	psl.limiters[source] = limiter
	return limiter
}

// Allow checks if a request to source can proceed.
func (psl *PerSourceLimiter) Allow(source string) bool {
	return psl.getLimiter(source).Allow()
}

// Wait blocks until a token is available for source.
func (psl *PerSourceLimiter) Wait(ctx context.Context, source string) error {
	return psl.getLimiter(source).Wait(ctx)
}
