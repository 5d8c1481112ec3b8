package api

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type RetryPolicy struct {
	BaseDelay  time.Duration
	MaxRetries int
}

// retryDo runs the operation up to MaxRetries times, backing off
// linearly between attempts. Only transport failures are retried:
// 401s and other HTTP errors are permanent from the client's view and
// retrying them would just mask the real failure.
func retryDo[T any](ctx context.Context, policy RetryPolicy, operation func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= policy.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		resp, err := operation(ctx)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !isRetryable(err) {
			return zero, err
		}

		if attempt < policy.MaxRetries {
			timer := time.NewTimer(policy.backoff(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return zero, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

func isRetryable(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// backoff grows linearly with the attempt number: base, 2×base, 3×base.
func (p RetryPolicy) backoff(attempt int) time.Duration {
	return time.Duration(attempt) * p.BaseDelay
}
