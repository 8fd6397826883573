package assistant

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

const maxRetryJitter = 500 * time.Millisecond

// Retrier wraps a fallible operation with bounded retries using exponential
// backoff and jitter. Every invocation of Do gets its own attempt budget;
// there is no circuit breaker.
type Retrier struct {
	attempts  int
	baseDelay time.Duration

	sleep  func(ctx context.Context, d time.Duration) error
	jitter func() time.Duration
}

// NewRetrier creates a retrier with the given attempt budget and base delay
func NewRetrier(attempts int, baseDelay time.Duration) *Retrier {
	return &Retrier{
		attempts:  attempts,
		baseDelay: baseDelay,
		sleep:     sleepContext,
		jitter: func() time.Duration {
			return time.Duration(rand.Int63n(int64(maxRetryJitter)))
		},
	}
}

// Do runs op until it succeeds or the attempt budget is exhausted, waiting
// baseDelay × 1.5^(attempt−1) plus jitter between attempts. The last failure
// is returned to the caller.
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context) (string, error)) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= r.attempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		log.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", r.attempts).
			Msg("model call failed")

		if attempt == r.attempts {
			break
		}

		delay := time.Duration(float64(r.baseDelay)*math.Pow(1.5, float64(attempt-1))) + r.jitter()
		if err := r.sleep(ctx, delay); err != nil {
			return "", err
		}
	}

	return "", lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
