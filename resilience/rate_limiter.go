// Package resilience provides rate limiting for outbound registry traffic.
//
// The engine issues one registry lookup per package reference; a project with
// hundreds of references would otherwise fire hundreds of simultaneous
// requests at the package index. The token bucket bounds sustained request
// rate per registry host.
package resilience

import (
	"context"
	"sync"
	"time"
)

// TokenBucketConfig holds token bucket configuration.
type TokenBucketConfig struct {
	// Capacity is the maximum number of tokens in the bucket.
	Capacity int

	// RefillRate is tokens added per second.
	RefillRate float64

	// InitialTokens is the number of tokens at startup (default: Capacity).
	InitialTokens int
}

// DefaultTokenBucketConfig returns default configuration: a 20 request
// burst with 10 req/s sustained. Registry index lookups are small, but
// editor hosts re-check aggressively.
func DefaultTokenBucketConfig() TokenBucketConfig {
	return TokenBucketConfig{
		Capacity:      20,
		RefillRate:    10.0,
		InitialTokens: 20,
	}
}

// TokenBucket implements the token bucket rate limiting algorithm.
type TokenBucket struct {
	mu sync.Mutex

	capacity     int
	refillRate   float64
	tokens       float64
	lastRefillAt time.Time
}

// NewTokenBucket creates a new token bucket rate limiter.
func NewTokenBucket(config TokenBucketConfig) *TokenBucket {
	initialTokens := config.InitialTokens
	if initialTokens == 0 {
		initialTokens = config.Capacity
	}
	if initialTokens > config.Capacity {
		initialTokens = config.Capacity
	}

	return &TokenBucket{
		capacity:     config.Capacity,
		refillRate:   config.RefillRate,
		tokens:       float64(initialTokens),
		lastRefillAt: time.Now(),
	}
}

// refill adds tokens based on elapsed time. Caller must hold the lock.
func (tb *TokenBucket) refill() {
	now := time.Now()
	elapsed := now.Sub(tb.lastRefillAt).Seconds()
	tb.lastRefillAt = now

	tb.tokens += elapsed * tb.refillRate
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}
}

// Allow checks if a request can proceed (non-blocking).
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}
	return false
}

// Wait blocks until a token is available or the context is cancelled.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	for {
		if tb.Allow() {
			return nil
		}

		waitTime := tb.calculateWaitTime()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
			// Retry after wait
		}
	}
}

// calculateWaitTime calculates how long to wait for one token.
func (tb *TokenBucket) calculateWaitTime() time.Duration {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()

	deficit := 1.0 - tb.tokens
	if deficit <= 0 {
		return 0
	}
	seconds := deficit / tb.refillRate
	return time.Duration(seconds * float64(time.Second))
}

// Tokens returns the current number of available tokens.
func (tb *TokenBucket) Tokens() float64 {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	return tb.tokens
}
