package engine

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"http 429", &httpStatusError{StatusCode: 429}, true},
		{"http 502", &httpStatusError{StatusCode: 502}, true},
		{"http 503", &httpStatusError{StatusCode: 503}, true},
		{"regular error", errors.New("something"), false},
		{"timeout", &net.DNSError{IsTimeout: true}, true},
		{"op error", &net.OpError{Op: "dial", Err: errors.New("refused")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryable(tt.err); got != tt.want {
				t.Errorf("isRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRetryableStatus(t *testing.T) {
	for _, code := range []int{429, 500, 502, 503, 504} {
		if !isRetryableStatus(code) {
			t.Errorf("isRetryableStatus(%d) = false", code)
		}
	}
	for _, code := range []int{200, 301, 400, 403, 404} {
		if isRetryableStatus(code) {
			t.Errorf("isRetryableStatus(%d) = true", code)
		}
	}
}

func TestRetryDoSuccess(t *testing.T) {
	rc := RetryConfig{MaxRetries: 3, InitialWait: time.Millisecond, MaxWait: 10 * time.Millisecond, Multiplier: 2}
	calls := 0
	got, err := RetryDo(context.Background(), rc, func() (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("got %q, want %q", got, "ok")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetryDoRetryThenSuccess(t *testing.T) {
	rc := RetryConfig{MaxRetries: 3, InitialWait: time.Millisecond, MaxWait: 10 * time.Millisecond, Multiplier: 2}
	calls := 0
	got, err := RetryDo(context.Background(), rc, func() (string, error) {
		calls++
		if calls < 3 {
			return "", &httpStatusError{StatusCode: 503}
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("got %q, want %q", got, "ok")
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetryDoNonRetryableStops(t *testing.T) {
	rc := RetryConfig{MaxRetries: 3, InitialWait: time.Millisecond, MaxWait: 10 * time.Millisecond, Multiplier: 2}
	calls := 0
	wantErr := errors.New("permanent failure")
	_, err := RetryDo(context.Background(), rc, func() (int, error) {
		calls++
		return 0, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("got error %v, want %v", err, wantErr)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetryDoExhaustsRetries(t *testing.T) {
	rc := RetryConfig{MaxRetries: 2, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond, Multiplier: 2}
	calls := 0
	_, err := RetryDo(context.Background(), rc, func() (int, error) {
		calls++
		return 0, &httpStatusError{StatusCode: 500}
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 3 {
		t.Errorf("expected 3 calls (1 + 2 retries), got %d", calls)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"5", 5 * time.Second},
		{"0", 0},
		{"-3", 0},
		{"Wed, 21 Oct 2026 07:28:00 GMT", 0},
	}
	for _, tt := range tests {
		if got := parseRetryAfter(tt.in); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRetryDoHonorsRetryAfterHint(t *testing.T) {
	rc := RetryConfig{MaxRetries: 1, InitialWait: time.Millisecond, MaxWait: time.Second, Multiplier: 2}
	calls := 0
	start := time.Now()
	_, err := RetryDo(context.Background(), rc, func() (int, error) {
		calls++
		return 0, &httpStatusError{StatusCode: 429, RetryAfter: 50 * time.Millisecond}
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("hint not honored: waited only %v", elapsed)
	}
}

func TestRetryDoCapsRetryAfterHint(t *testing.T) {
	// A hostile or broken hint must not stall past MaxWait.
	rc := RetryConfig{MaxRetries: 1, InitialWait: time.Millisecond, MaxWait: 20 * time.Millisecond, Multiplier: 2}
	start := time.Now()
	_, _ = RetryDo(context.Background(), rc, func() (int, error) {
		return 0, &httpStatusError{StatusCode: 429, RetryAfter: time.Hour}
	})
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("hint not capped: waited %v", elapsed)
	}
}

func TestRetryDoContextCancel(t *testing.T) {
	rc := RetryConfig{MaxRetries: 5, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 2}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	_, err := RetryDo(ctx, rc, func() (int, error) {
		calls++
		return 0, &httpStatusError{StatusCode: 503}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got error %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("expected 0 calls on cancelled context, got %d", calls)
	}
}
