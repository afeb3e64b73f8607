package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// TestIsQuotaSignal exercises the predicate against sample upstream error shapes.
func TestIsQuotaSignal(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"structured 429", &googleapi.Error{Code: 429, Message: "rate limited"}, true},
		{"wrapped structured 429", fmt.Errorf("text generation: %w", &googleapi.Error{Code: 429}), true},
		{"grpc resource exhausted", status.Error(codes.ResourceExhausted, "resource exhausted"), true},
		{"textual quota marker", errors.New("googleapi: Error: Quota exceeded for requests"), true},
		{"textual RESOURCE_EXHAUSTED", errors.New("rpc error: code = 8 desc = RESOURCE_EXHAUSTED"), true},
		{"textual 429", errors.New("server responded with 429"), true},
		{"structured 500", &googleapi.Error{Code: 500, Message: "internal"}, false},
		{"grpc unavailable", status.Error(codes.Unavailable, "unavailable"), false},
		{"plain error", errors.New("connection reset by peer"), false},
		{"invalid argument", errors.New("INVALID_ARGUMENT: bad request"), false},
	}
	for _, tc := range cases {
		if got := IsQuotaSignal(tc.err); got != tc.want {
			t.Errorf("%s: IsQuotaSignal = %v, want %v", tc.name, got, tc.want)
		}
	}
}

// TestDo_QuotaFailuresThenSuccess asserts the call ultimately succeeds and the
// delay before retry k is BaseDelay * 2^(k-1).
func TestDo_QuotaFailuresThenSuccess(t *testing.T) {
	var delays []time.Duration
	inv := &Invoker{
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
		Sleep: func(ctx context.Context, d time.Duration) error {
			delays = append(delays, d)
			return nil
		},
	}

	calls := 0
	result, err := Do(context.Background(), inv, func() (string, error) {
		calls++
		if calls <= 2 {
			return "", errors.New("quota exceeded")
		}
		return "done", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "done" {
		t.Errorf("result %q", result)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	want := []time.Duration{2 * time.Second, 4 * time.Second}
	if len(delays) != len(want) {
		t.Fatalf("delays = %v, want %v", delays, want)
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Errorf("delay[%d] = %v, want %v", i, delays[i], want[i])
		}
	}
}

// TestDo_NonQuotaFailsImmediately asserts non-quota errors never retry and
// never sleep.
func TestDo_NonQuotaFailsImmediately(t *testing.T) {
	slept := 0
	inv := &Invoker{
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
		Sleep: func(ctx context.Context, d time.Duration) error {
			slept++
			return nil
		},
	}

	original := errors.New("connection refused")
	calls := 0
	_, err := Do(context.Background(), inv, func() (string, error) {
		calls++
		return "", original
	})
	if !errors.Is(err, original) {
		t.Errorf("error %v, want original propagated unchanged", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if slept != 0 {
		t.Errorf("slept %d times, want 0", slept)
	}
}

// TestDo_ExhaustsBudget asserts exactly MaxRetries retries (budget+1 total
// attempts) before the original error propagates.
func TestDo_ExhaustsBudget(t *testing.T) {
	var delays []time.Duration
	inv := &Invoker{
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
		Sleep: func(ctx context.Context, d time.Duration) error {
			delays = append(delays, d)
			return nil
		},
	}

	original := &googleapi.Error{Code: 429, Message: "rate limited"}
	calls := 0
	_, err := Do(context.Background(), inv, func() (int, error) {
		calls++
		return 0, original
	})
	if !errors.Is(err, original) {
		t.Errorf("error %v, want original propagated unchanged", err)
	}
	if calls != 4 {
		t.Errorf("calls = %d, want 4 (1 initial + 3 retries)", calls)
	}
	want := []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}
	if len(delays) != len(want) {
		t.Fatalf("delays = %v, want %v", delays, want)
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Errorf("delay[%d] = %v, want %v", i, delays[i], want[i])
		}
	}
}

// TestDo_ContextCancelledDuringBackoff asserts the upstream error propagates
// when the hosting environment times out mid-backoff.
func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	inv := &Invoker{
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
		Sleep: func(ctx context.Context, d time.Duration) error {
			return context.DeadlineExceeded
		},
	}

	original := errors.New("quota exceeded")
	calls := 0
	_, err := Do(context.Background(), inv, func() (string, error) {
		calls++
		return "", original
	})
	if !errors.Is(err, original) {
		t.Errorf("error %v, want original upstream error", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
