package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo_StopsAfterFirstSuccess(t *testing.T) {
	calls := 0
	err := NoDelay(3).Do(context.Background(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestDo_RetriesUpToBoundAndReturnsLastError(t *testing.T) {
	calls := 0
	last := errors.New("attempt 3")
	errs := []error{errors.New("attempt 1"), errors.New("attempt 2"), last}
	err := NoDelay(3).Do(context.Background(), func() error {
		calls++
		return errs[calls-1]
	})
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	if !errors.Is(err, last) {
		t.Fatalf("expected last error, got %v", err)
	}
}

func TestDo_SucceedsOnSecondAttempt(t *testing.T) {
	calls := 0
	err := NoDelay(3).Do(context.Background(), func() error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestDo_LinearBackoffScalesWithAttempt(t *testing.T) {
	var slept []time.Duration
	p := Policy{
		MaxAttempts: 3,
		Backoff:     100 * time.Millisecond,
		Sleep:       func(d time.Duration) { slept = append(slept, d) },
	}
	_ = p.Do(context.Background(), func() error { return errors.New("always") })

	want := []time.Duration{0, 100 * time.Millisecond}
	if len(slept) != len(want) {
		t.Fatalf("expected %d sleeps, got %d", len(want), len(slept))
	}
	for i := range want {
		if slept[i] != want[i] {
			t.Fatalf("sleep %d: expected %v, got %v", i, want[i], slept[i])
		}
	}
}

func TestDo_RespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NoDelay(3).Do(ctx, func() error {
		t.Fatal("action should not run after cancellation")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
