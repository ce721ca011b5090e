package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPacerSpacesCalls(t *testing.T) {
	pacer := NewPacer(40 * time.Millisecond)
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := pacer.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 70*time.Millisecond {
		t.Fatalf("expected calls to be spaced, took %s", elapsed)
	}
}

func TestPacerHonoursCancellation(t *testing.T) {
	pacer := NewPacer(time.Hour)
	if err := pacer.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := pacer.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled error, got %v", err)
	}
}

func TestPacerWithoutIntervalNeverBlocks(t *testing.T) {
	pacer := NewPacer(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := pacer.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Fatalf("expected no pacing, took %s", elapsed)
	}
}
