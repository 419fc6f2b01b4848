package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestExponentialBackoff(t *testing.T) {
	backoff := ExponentialBackoff(time.Second)

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 1 * time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
	}
	for _, tt := range tests {
		if got := backoff(tt.attempt); got != tt.expected {
			t.Errorf("backoff(%d) = %v, expected %v", tt.attempt, got, tt.expected)
		}
	}
}

func TestRetryPolicy_SucceedsFirstTry(t *testing.T) {
	calls := 0
	p := RetryPolicy{MaxAttempts: 3}

	err := p.Do(context.Background(), func() error {
		calls++
		return nil
	})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetryPolicy_NonRetryableAbortsImmediately(t *testing.T) {
	permanent := errors.New("bad request")
	calls := 0
	p := RetryPolicy{
		MaxAttempts: 3,
		Backoff:     func(int) time.Duration { return 0 },
		Retryable:   func(err error) bool { return false },
	}

	err := p.Do(context.Background(), func() error {
		calls++
		return permanent
	})

	if !errors.Is(err, permanent) {
		t.Errorf("expected the permanent error back, got %v", err)
	}
	if calls != 1 {
		t.Errorf("non-retryable error should stop after 1 call, got %d", calls)
	}
}

func TestRetryPolicy_ExhaustsAttempts(t *testing.T) {
	transient := errors.New("rate limited")
	calls := 0
	p := RetryPolicy{
		MaxAttempts: 2,
		Backoff:     func(int) time.Duration { return time.Millisecond },
		Retryable:   func(err error) bool { return true },
	}

	err := p.Do(context.Background(), func() error {
		calls++
		return transient
	})

	if !errors.Is(err, transient) {
		t.Errorf("expected the transient error back, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected exactly 2 attempts, got %d", calls)
	}
}

func TestRetryPolicy_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := RetryPolicy{
		MaxAttempts: 3,
		Backoff:     func(int) time.Duration { return time.Minute },
		Retryable:   func(err error) bool { return true },
	}

	err := p.Do(ctx, func() error {
		return errors.New("rate limited")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled during backoff wait, got %v", err)
	}
}

func TestRetryPolicy_ZeroMaxAttemptsRunsOnce(t *testing.T) {
	calls := 0
	p := RetryPolicy{}

	p.Do(context.Background(), func() error {
		calls++
		return errors.New("boom")
	})

	if calls != 1 {
		t.Errorf("expected exactly 1 call with zero MaxAttempts, got %d", calls)
	}
}
