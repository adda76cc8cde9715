// Package ratelimiter throttles calls to rate limited upstream APIs.
package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterInterface blocks until the next call is allowed.
type RateLimiterInterface interface {
	WaitIfNeeded(ctx context.Context) error
}

// RateLimiter allows limit calls per interval, bursting up to limit. Safe for
// concurrent use.
type RateLimiter struct {
	limiter  *rate.Limiter
	limit    int
	interval time.Duration
}

var _ RateLimiterInterface = (*RateLimiter)(nil)

// NewRateLimiter creates a limiter for limit calls per interval.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	return &RateLimiter{
		limiter:  rate.NewLimiter(rate.Every(interval/time.Duration(limit)), limit),
		limit:    limit,
		interval: interval,
	}
}

// WaitIfNeeded returns immediately while tokens remain and otherwise sleeps until one
// is available or ctx ends.
func (rl *RateLimiter) WaitIfNeeded(ctx context.Context) error {
	if rl.limiter.Allow() {
		return nil
	}
	slog.Debug("rate limit hit, waiting", "limit", rl.limit, "interval", rl.interval)
	return rl.limiter.Wait(ctx)
}
