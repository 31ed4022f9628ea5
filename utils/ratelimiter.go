package utils

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter paces navigations against the reservation platform. It is
// shared across concurrent scans so the combined request rate stays bounded.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter allowing one event per delayMs
// milliseconds, with no burst headroom.
func NewRateLimiter(delayMs int) *RateLimiter {
	interval := time.Duration(delayMs) * time.Millisecond
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Wait blocks until the limiter grants a slot or ctx is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
