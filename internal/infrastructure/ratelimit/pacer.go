// Package ratelimit spaces outbound calls to remote translation providers.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

const DefaultInterval = 500 * time.Millisecond

// Pacer admits one call per interval. The first call passes immediately.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer returns a pacer that never blocks when interval <= 0.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
