package retry

import (
	"context"
	"time"
)

// Policy retries an action a fixed number of times with a linear backoff.
// The sleep function is injectable so tests can run with zero delay.
type Policy struct {
	MaxAttempts int
	Backoff     time.Duration
	Sleep       func(d time.Duration)
}

// Default matches the dashboard's historical behavior: three attempts with
// short linear delays (0ms, 100ms, 200ms) tuned for low-spec terminals.
func Default() Policy {
	return Policy{
		MaxAttempts: 3,
		Backoff:     100 * time.Millisecond,
		Sleep:       time.Sleep,
	}
}

// NoDelay returns a policy with the given attempt bound and no sleeping
// between attempts. Used by tests.
func NoDelay(attempts int) Policy {
	return Policy{
		MaxAttempts: attempts,
		Backoff:     0,
		Sleep:       func(time.Duration) {},
	}
}

// Do runs action until it succeeds or the attempt bound is reached. The last
// error is returned. The context is checked between attempts.
func (p Policy) Do(ctx context.Context, action func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if lastErr = action(); lastErr == nil {
			return nil
		}
		if attempt < attempts {
			// No delay on the first retry, then Backoff * attempt.
			sleep(time.Duration(attempt-1) * p.Backoff)
		}
	}
	return lastErr
}
