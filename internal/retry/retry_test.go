// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

var (
	errTransient = errors.New("transient")
	errFatal     = errors.New("fatal")
)

func isTransient(err error) bool { return errors.Is(err, errTransient) }

func fastPolicy(attempts int) Policy {
	return Policy{
		MaxAttempts: attempts,
		BaseDelay:   time.Millisecond,
		MaxDelay:    2 * time.Millisecond,
		Retryable:   isTransient,
	}
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastPolicy(5), "test", func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errTransient
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" || calls != 3 {
		t.Errorf("got %q after %d calls, want ok after 3", got, calls)
	}
}

func TestDo_NonRetryableReturnsImmediately(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastPolicy(5), "test", func(context.Context) (int, error) {
		calls++
		return 0, errFatal
	})
	if !errors.Is(err, errFatal) {
		t.Errorf("err = %v, want errFatal", err)
	}
	if errors.Is(err, ErrExhausted) {
		t.Error("a non-retryable failure is not an exhaustion")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastPolicy(5), "chat", func(context.Context) (int, error) {
		calls++
		return 0, errTransient
	})
	if calls != 5 {
		t.Errorf("calls = %d, want 5", calls)
	}
	if !errors.Is(err, ErrExhausted) || !errors.Is(err, errTransient) {
		t.Errorf("err = %v, want ErrExhausted wrapping the last failure", err)
	}
}

func TestDo_SingleAttempt(t *testing.T) {
	for _, attempts := range []int{0, 1} {
		calls := 0
		_, err := Do(context.Background(), fastPolicy(attempts), "test", func(context.Context) (int, error) {
			calls++
			return 0, errTransient
		})
		if calls != 1 {
			t.Errorf("MaxAttempts=%d: calls = %d, want 1", attempts, calls)
		}
		if !errors.Is(err, errTransient) {
			t.Errorf("MaxAttempts=%d: err = %v", attempts, err)
		}
	}
}

func TestDo_NilPredicateRetriesEverything(t *testing.T) {
	p := fastPolicy(3)
	p.Retryable = nil

	calls := 0
	_, _ = Do(context.Background(), p, "test", func(context.Context) (int, error) {
		calls++
		return 0, errFatal
	})
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := fastPolicy(5)
	p.BaseDelay = time.Hour
	p.MaxDelay = time.Hour

	calls := 0
	done := make(chan error, 1)
	go func() {
		_, err := Do(ctx, p, "test", func(context.Context) (int, error) {
			calls++
			return 0, errTransient
		})
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Do did not return after cancellation")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestBackoff_FullJitterWithinCap(t *testing.T) {
	p := Policy{MaxAttempts: 20, BaseDelay: 10 * time.Millisecond, MaxDelay: 40 * time.Millisecond}
	b := p.Backoff()

	n := 0
	for {
		d, stop := b.Next()
		if stop {
			break
		}
		n++
		if d < 0 || d > p.MaxDelay {
			t.Errorf("delay %d = %v, want within [0, %v]", n, d, p.MaxDelay)
		}
	}
	if n != 19 {
		t.Errorf("backoff yielded %d delays, want 19", n)
	}
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy(isTransient)
	if p.MaxAttempts != 5 || p.BaseDelay != time.Second || p.MaxDelay != time.Minute {
		t.Errorf("DefaultPolicy = %+v", p)
	}
	if !p.retryable(errTransient) || p.retryable(errFatal) {
		t.Error("predicate not applied")
	}
}
