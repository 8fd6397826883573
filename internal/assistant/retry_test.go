package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRetrier(delays *[]time.Duration) *Retrier {
	r := NewRetrier(3, 2*time.Second)
	r.jitter = func() time.Duration { return 0 }
	r.sleep = func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
	return r
}

func TestRetrierSucceedsAfterFailures(t *testing.T) {
	var delays []time.Duration
	r := newTestRetrier(&delays)

	calls := 0
	result, err := r.Do(context.Background(), func(ctx context.Context) (string, error) {
		calls++
		if calls <= 2 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 3 * time.Second}, delays)
}

func TestRetrierPropagatesLastError(t *testing.T) {
	var delays []time.Duration
	r := newTestRetrier(&delays)

	calls := 0
	lastErr := errors.New("final failure")
	_, err := r.Do(context.Background(), func(ctx context.Context) (string, error) {
		calls++
		if calls == 3 {
			return "", lastErr
		}
		return "", errors.New("earlier failure")
	})

	assert.Equal(t, lastErr, err)
	assert.Equal(t, 3, calls)
	// No delay follows the final attempt.
	assert.Len(t, delays, 2)
}

func TestRetrierFirstTrySuccess(t *testing.T) {
	var delays []time.Duration
	r := newTestRetrier(&delays)

	result, err := r.Do(context.Background(), func(ctx context.Context) (string, error) {
		return "immediate", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "immediate", result)
	assert.Empty(t, delays)
}

func TestRetrierStopsOnCancelledSleep(t *testing.T) {
	r := NewRetrier(3, time.Millisecond)
	r.jitter = func() time.Duration { return 0 }
	r.sleep = func(ctx context.Context, d time.Duration) error { return context.Canceled }

	calls := 0
	_, err := r.Do(context.Background(), func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("transient")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
