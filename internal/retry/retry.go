// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package retry runs outbound calls under a bounded exponential backoff
// policy with full jitter. Which errors are worth another attempt is decided
// by the policy's predicate; everything else is returned immediately.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

// ErrExhausted marks a failure returned after the last permitted attempt.
var ErrExhausted = errors.New("retry attempts exhausted")

// Policy describes how an operation is retried.
type Policy struct {
	// MaxAttempts counts the first call. Values below 1 mean a single attempt.
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration

	// Retryable reports whether err is transient. A nil predicate retries
	// every error.
	Retryable func(err error) bool
}

// DefaultPolicy returns 5 attempts starting at 1s, capped at 60s. The
// caller supplies the transient-error predicate.
func DefaultPolicy(retryable func(error) bool) Policy {
	return Policy{
		MaxAttempts: 5,
		BaseDelay:   time.Second,
		MaxDelay:    60 * time.Second,
		Retryable:   retryable,
	}
}

// Backoff builds a fresh backoff sequence for one Do call: exponential from
// BaseDelay, capped at MaxDelay, each wait drawn uniformly from [0, delay].
func (p Policy) Backoff() goretry.Backoff {
	base := p.BaseDelay
	if base <= 0 {
		base = time.Millisecond
	}
	b := goretry.NewExponential(base)
	if p.MaxDelay > 0 {
		b = goretry.WithCappedDuration(p.MaxDelay, b)
	}
	b = fullJitter(b)

	retries := 0
	if p.MaxAttempts > 1 {
		retries = p.MaxAttempts - 1
	}
	return goretry.WithMaxRetries(uint64(retries), b)
}

func fullJitter(next goretry.Backoff) goretry.Backoff {
	return goretry.BackoffFunc(func() (time.Duration, bool) {
		d, stop := next.Next()
		if stop {
			return 0, true
		}
		if d <= 0 {
			return 0, false
		}
		return time.Duration(rand.Int64N(int64(d) + 1)), false
	})
}

func (p Policy) retryable(err error) bool {
	if p.Retryable == nil {
		return true
	}
	return p.Retryable(err)
}

// Do runs fn until it succeeds, fails with a non-retryable error, the
// attempts are used up or ctx is done. op names the call in log lines and
// in the exhaustion error.
func Do[T any](ctx context.Context, p Policy, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	attempt := 0
	exhausted := false

	v, err := goretry.DoValue(ctx, p.Backoff(), func(ctx context.Context) (T, error) {
		attempt++
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if !p.retryable(err) || ctx.Err() != nil {
			return v, err
		}
		if attempt >= max(p.MaxAttempts, 1) {
			exhausted = true
			return v, err
		}
		slog.Warn("retrying call", "op", op, "attempt", attempt, "max_attempts", p.MaxAttempts, "error", err)
		return v, goretry.RetryableError(err)
	})

	if err != nil && exhausted {
		var zero T
		return zero, fmt.Errorf("%s: %w after %d attempts: %w", op, ErrExhausted, attempt, err)
	}
	return v, err
}
