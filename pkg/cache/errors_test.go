package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := unavailable("redis", errors.New("connection refused"))
	if !IsRetryable(err) {
		t.Error("IsRetryable() = false for an unavailable backend")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error %v does not wrap ErrUnavailable", err)
	}
	if !strings.Contains(err.Error(), "redis: connection refused") {
		t.Errorf("Error() = %q, want backend and cause", err.Error())
	}
	if IsRetryable(ErrUnknownBackend) {
		t.Error("IsRetryable() = true for a plain error")
	}
}

func TestBackoffRetry(t *testing.T) {
	fast := Backoff{Attempts: 3, Delay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	tests := []struct {
		name      string
		backoff   Backoff
		failures  int
		retryable bool
		wantCalls int
		wantErr   bool
	}{
		{name: "success first try", backoff: fast, wantCalls: 1},
		{name: "non-retryable stops", backoff: fast, failures: 5, wantCalls: 1, wantErr: true},
		{name: "recovers after retry", backoff: fast, failures: 1, retryable: true, wantCalls: 2},
		{name: "gives up", backoff: fast, failures: 5, retryable: true, wantCalls: 3, wantErr: true},
		{name: "zero attempts still tries once", backoff: Backoff{}, failures: 5, retryable: true, wantCalls: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := tt.backoff.Retry(context.Background(), func() error {
				calls++
				if calls > tt.failures {
					return nil
				}
				if tt.retryable {
					return Retryable(ErrUnavailable)
				}
				return ErrUnknownBackend
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("Retry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestBackoffRetryCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := DefaultBackoff.Retry(ctx, func() error {
		calls++
		return Retryable(ErrUnavailable)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
