package runtime

import (
	"context"
	"testing"
	"time"
)

func TestStartupLimiterZeroRateNeverBlocks(t *testing.T) {
	l := newStartupLimiter(0)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	for i := 0; i < 100; i++ {
		if err := l.wait(ctx); err != nil {
			t.Fatalf("expected an unpaced limiter to never block, got %v", err)
		}
	}
}

func TestStartupLimiterPositiveRatePaces(t *testing.T) {
	l := newStartupLimiter(1000)
	ctx := context.Background()
	if err := l.wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}
}

func TestSleepMillisActuallySleeps(t *testing.T) {
	start := time.Now()
	sleepMillis(20)
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Fatalf("expected sleepMillis(20) to block for roughly 20ms, only elapsed %v", elapsed)
	}
}
