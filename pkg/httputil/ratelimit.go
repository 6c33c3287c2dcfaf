package httputil

import (
	"context"
	"sync"
	"time"
)

// Limiter enforces a minimum interval between consecutive operations.
// It is the pacing policy for outbound registry requests: every request
// waits until at least the configured interval has passed since the
// previous one. A zero or negative interval disables pacing.
//
// Limiter is safe for concurrent use, although the crawl that drives it
// is sequential.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewLimiter creates a Limiter with the given minimum interval.
func NewLimiter(interval time.Duration) *Limiter {
	return &Limiter{interval: interval}
}

// Wait blocks until the interval since the previous Wait has elapsed, then
// records the current time. Returns ctx.Err() if the context is cancelled
// while waiting. The first call never blocks.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.interval <= 0 {
		return nil
	}

	l.mu.Lock()
	wait := l.interval - time.Since(l.last)
	if wait <= 0 {
		l.last = time.Now()
		l.mu.Unlock()
		return nil
	}
	l.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
	}

	l.mu.Lock()
	l.last = time.Now()
	l.mu.Unlock()
	return nil
}
