package usecase

import (
	"context"
	"testing"
	"time"
)

func TestPacerZeroIntervalNeverSleeps(t *testing.T) {
	t.Parallel()

	p := NewPacer(0)
	p.sleep = func(ctx context.Context, d time.Duration) error {
		t.Fatal("sleep must not be called for zero interval")
		return nil
	}

	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait error: %v", err)
	}
}

func TestPacerStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	p := NewPacer(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Wait(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
