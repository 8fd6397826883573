package assistant

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// RateLimitError reports a rejected admission along with how long the caller
// should wait before retrying.
type RateLimitError struct {
	Wait time.Duration
}

func (e *RateLimitError) Error() string {
	seconds := int(math.Ceil(e.Wait.Seconds()))
	return fmt.Sprintf("Rate limit exceeded. Please try again in %d seconds.", seconds)
}

// WindowLimiter is a process-wide fixed-window gate on external model calls.
// All callers contend for the same budget; the counter is mutex-protected so
// two concurrent callers cannot both slip past the limit.
type WindowLimiter struct {
	mu          sync.Mutex
	max         int
	window      time.Duration
	count       int
	windowStart time.Time

	now func() time.Time
}

// NewWindowLimiter creates a limiter admitting max calls per window
func NewWindowLimiter(max int, window time.Duration) *WindowLimiter {
	return &WindowLimiter{
		max:    max,
		window: window,
		now:    time.Now,
	}
}

// TryAdmit consumes one slot of the current window. It returns a
// *RateLimitError carrying the remaining wait time when the window budget is
// exhausted.
func (l *WindowLimiter) TryAdmit() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.windowStart) > l.window {
		l.count = 0
		l.windowStart = now
	}

	if l.count >= l.max {
		return &RateLimitError{Wait: l.window - now.Sub(l.windowStart)}
	}

	l.count++
	return nil
}
