package worker

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultMinInterval is the minimum spacing between any two outbound
// requests to the lookup service. The service expects this spacing from
// anonymous and authenticated clients alike; treat it as a hard external
// contract, not a tunable.
const DefaultMinInterval = 500 * time.Millisecond

// Limiter enforces process-wide request spacing. Every request path
// (structured search and the free-text fallback alike) must Wait on the
// same Limiter before firing, so a citation needing two queries costs at
// least one inter-request delay.
type Limiter struct {
	limiter  *rate.Limiter
	interval time.Duration
}

// NewLimiter creates a limiter with the given minimum interval between
// requests. Non-positive intervals fall back to DefaultMinInterval.
func NewLimiter(minInterval time.Duration) *Limiter {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	return &Limiter{
		limiter:  rate.NewLimiter(rate.Every(minInterval), 1),
		interval: minInterval,
	}
}

// Wait blocks until the spacing since the previous request is satisfied,
// or the context is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a request could fire now without waiting
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Interval returns the configured minimum spacing
func (l *Limiter) Interval() time.Duration {
	return l.interval
}
