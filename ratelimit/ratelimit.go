// Package ratelimit throttles outbound webhook dispatches per target host.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter implements token bucket rate limiting keyed by target host.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	tokens   float64
	lastFill time.Time
	rate     float64 // tokens per second, also the burst capacity
}

// take refills the bucket for the time elapsed since the last call and
// consumes one token if available.
func (b *bucket) take(now time.Time) bool {
	b.tokens = min(b.tokens+now.Sub(b.lastFill).Seconds()*b.rate, b.rate)
	b.lastFill = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--

	return true
}

// New creates a new rate limiter.
func New() *Limiter {
	return &Limiter{
		buckets: make(map[string]*bucket),
	}
}

// Allow checks whether a dispatch to host may proceed.
// A rate of 0 means unlimited (always returns true).
func (l *Limiter) Allow(host string, rate int) bool {
	if rate <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[host]
	if !ok {
		b = &bucket{tokens: float64(rate), lastFill: time.Now(), rate: float64(rate)}
		l.buckets[host] = b
	}

	return b.take(time.Now())
}

// Wait blocks until the rate limit allows the dispatch or the context is
// cancelled. A rate of 0 means unlimited (returns immediately).
func (l *Limiter) Wait(ctx context.Context, host string, rate int) error {
	if rate <= 0 {
		return nil
	}

	// Roughly the time for one token to become available.
	retry := time.Second / time.Duration(rate)

	for !l.Allow(host, rate) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retry):
		}
	}

	return nil
}

// Reset clears the rate limit state for a host.
func (l *Limiter) Reset(host string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, host)
}
