// Package ratelimit spaces out calls to external tools.
package ratelimit

import (
	"context"
	"time"
)

// DefaultSpacing is the minimum time between two clip extractions.
const DefaultSpacing = 2 * time.Second

// Limiter remembers when the last call was let through and makes the next one
// wait until at least Spacing has passed since then. It is not safe for
// concurrent use; extractions run one at a time.
type Limiter struct {
	spacing time.Duration
	last    time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func New(spacing time.Duration) *Limiter {
	if spacing < 0 {
		spacing = 0
	}
	return &Limiter{spacing: spacing, now: time.Now, sleep: sleepContext}
}

// Wait blocks for whatever remains of the spacing since the previous call, then
// records the current call.
func (l *Limiter) Wait(ctx context.Context) error {
	if !l.last.IsZero() {
		if remaining := l.spacing - l.now().Sub(l.last); remaining > 0 {
			if err := l.sleep(ctx, remaining); err != nil {
				return err
			}
		}
	}
	l.last = l.now()
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
