// Package backoff provides fixed-schedule retry helpers.
package backoff

import (
	"context"
	"fmt"
	"time"
)

type Strategy struct {
	Delays []time.Duration
}

// Quick suits startup dependencies such as the database coming up.
var Quick = Strategy{
	Delays: []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
	},
}

type RetryFunc func(ctx context.Context, attempt int) error

// Retry runs fn once per schedule slot until it succeeds or the schedule
// is exhausted. The last attempt's error is wrapped in the final failure.
func Retry(ctx context.Context, strategy Strategy, fn RetryFunc) error {
	var lastErr error

	for i := 0; i < len(strategy.Delays); i++ {
		if err := fn(ctx, i+1); err != nil {
			lastErr = err
			if i == len(strategy.Delays)-1 {
				break
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(strategy.Delays[i]):
			}
			continue
		}
		return nil
	}

	return fmt.Errorf("failed after %d attempts: %w", len(strategy.Delays), lastErr)
}
