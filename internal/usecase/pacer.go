package usecase

import (
	"context"
	"time"
)

// Pacer enforces a minimum spacing between successive steps of a sequential
// loop, as a self-imposed rate limit on external calls.
type Pacer struct {
	interval time.Duration
	sleep    func(context.Context, time.Duration) error
}

// NewPacer builds a pacer; a non-positive interval disables waiting.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval, sleep: sleepContext}
}

// Wait blocks for the configured interval or until the context is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.interval <= 0 {
		return nil
	}
	return p.sleep(ctx, p.interval)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
