package runtime

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// startupLimiter paces how fast a TestWorker's execution units are spawned,
// per its startups_per_second parameter (spec.md §4.6). A zero or negative
// rate means "spawn all at once" (no pacing), matching the source's
// optional throttle.
type startupLimiter struct {
	limiter *rate.Limiter
}

func newStartupLimiter(perSecond float64) *startupLimiter {
	if perSecond <= 0 {
		return &startupLimiter{}
	}
	return &startupLimiter{limiter: rate.NewLimiter(rate.Limit(perSecond), 1)}
}

func (s *startupLimiter) wait(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	return s.limiter.Wait(ctx)
}

// defaultWaitToDie bounds how long StopTest gives in-flight units to finish
// cooperatively before the caller moves on, default 5s per spec.md §5.
const defaultWaitToDie = 5 * time.Second

// sleepMillis blocks for the summed timer delay before a sample, per
// spec.md §4.6.
func sleepMillis(ms int64) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
