package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fast = Strategy{Delays: []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fast, func(ctx context.Context, attempt int) error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryExhaustsSchedule(t *testing.T) {
	sentinel := errors.New("still down")
	err := Retry(context.Background(), fast, func(ctx context.Context, attempt int) error {
		return sentinel
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}

func TestRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	slow := Strategy{Delays: []time.Duration{time.Minute, time.Minute}}

	done := make(chan error, 1)
	go func() {
		done <- Retry(ctx, slow, func(ctx context.Context, attempt int) error {
			return errors.New("down")
		})
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("retry did not observe cancellation")
	}
}
