package ai

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds how often a transient vendor failure is retried.
type RetryPolicy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
}

func (p RetryPolicy) backOff(ctx context.Context, budget time.Duration) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		exp.InitialInterval = p.InitialInterval
	}
	exp.MaxElapsedTime = budget
	return backoff.WithContext(backoff.WithMaxRetries(exp, p.MaxRetries), ctx)
}

// withRetry runs call until it succeeds, fails permanently or the policy is exhausted.
// Only provider errors that report Temporary are retried.
func withRetry(ctx context.Context, policy RetryPolicy, budget time.Duration, call func(context.Context) (string, error)) (string, error) {
	var text string
	operation := func() error {
		out, err := call(ctx)
		if err != nil {
			var providerErr *ProviderError
			if errors.As(err, &providerErr) && providerErr.Temporary() {
				return err
			}
			return backoff.Permanent(err)
		}
		text = out
		return nil
	}

	if err := backoff.Retry(operation, policy.backOff(ctx, budget)); err != nil {
		return "", err
	}
	return text, nil
}
