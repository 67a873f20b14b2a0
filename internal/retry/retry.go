package retry

import (
	"context"
	"time"

	"github.com/saanuregh/deepcool-ch170/internal/errors"
	"github.com/saanuregh/deepcool-ch170/internal/logger"
)

// Clock abstracts waiting so retry timing is deterministic in tests.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NewClock returns a Clock backed by real time
func NewClock() Clock {
	return realClock{}
}

// Policy describes how an operation is retried.
// MaxAttempts of 0 retries without bound.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
}

// Do runs op until it succeeds, the policy is exhausted, or ctx is canceled.
func Do(ctx context.Context, p Policy, clock Clock, op func() error) error {
	errFactory := errors.New()

	delay := p.Delay
	attempt := 0

	for {
		err := op()
		if err == nil {
			return nil
		}

		attempt++
		if p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
			return errFactory.Wrap(errors.ErrRetryExhausted, err).WithData(attempt)
		}

		logger.Debug().
			Err(err).
			Int("attempt", attempt).
			Dur("delay", delay).
			Msg("Operation failed, retrying")

		if err := clock.Sleep(ctx, delay); err != nil {
			return errFactory.Wrap(errors.ErrTimeout, err)
		}

		if p.Multiplier > 1 {
			delay = time.Duration(float64(delay) * p.Multiplier)
			if p.MaxDelay > 0 && delay > p.MaxDelay {
				delay = p.MaxDelay
			}
		}
	}
}
