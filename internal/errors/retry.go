package errors

import (
	"context"
	"fmt"
	"time"
)

// RetryConfig configures retry behavior
type RetryConfig struct {
	MaxRetries int           // retries after the first attempt (default: 3)
	BaseDelay  time.Duration // delay before the first retry (default: 1s)
	Multiplier float64       // backoff growth per retry (default: 2)

	// Sleep waits between attempts. Nil uses a timer that returns early when
	// the context is cancelled.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryConfig returns the policy used by the analysis client
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		Multiplier: 2,
	}
}

// Delay returns the backoff before the given 1-based retry.
func (c RetryConfig) Delay(retry int) time.Duration {
	mult := c.Multiplier
	if mult <= 0 {
		mult = 2
	}
	delay := float64(c.BaseDelay)
	for i := 1; i < retry; i++ {
		delay *= mult
	}
	return time.Duration(delay)
}

// RetryObserver is told about every retry before its backoff starts
type RetryObserver func(attempt int, delay time.Duration, err error)

// Retry runs fn until it succeeds, fails permanently or the retry budget is
// spent. Only TransientError failures are retried.
func Retry[T any](ctx context.Context, config RetryConfig, fn func(ctx context.Context) (T, error), observe RetryObserver) (T, error) {
	var zero T
	sleep := config.Sleep
	if sleep == nil {
		sleep = SleepContext
	}

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}
		if !IsTransient(err) {
			return zero, err
		}
		if attempt >= config.MaxRetries {
			return zero, fmt.Errorf("max retries exceeded: %w", err)
		}

		retry := attempt + 1
		delay := config.Delay(retry)
		if observe != nil {
			observe(retry, delay, err)
		}
		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
	}
}

// SleepContext waits for d or until ctx is done.
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
