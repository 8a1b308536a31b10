package engine

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"
)

// RetryConfig controls backoff for YouTube-facing requests.
type RetryConfig struct {
	MaxRetries  int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig is tuned for YouTube's endpoints: the results-page and
// timedtext scrapes throttle with 429 far more often than they fail hard, and
// retrying a throttle too quickly just extends the penalty window. Start at a
// full second and give the cap enough room for a Retry-After hint.
var DefaultRetryConfig = RetryConfig{
	MaxRetries:  3,
	InitialWait: time.Second,
	MaxWait:     20 * time.Second,
	Multiplier:  2.0,
}

// RetryDo retries fn up to MaxRetries times with exponential backoff.
// A server-provided Retry-After hint overrides the computed wait when it is
// longer, capped at MaxWait. Non-retryable errors and context cancellation
// return immediately.
func RetryDo[T any](ctx context.Context, rc RetryConfig, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= rc.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return zero, err
		}

		if attempt < rc.MaxRetries {
			wait := time.Duration(float64(rc.InitialWait) * math.Pow(rc.Multiplier, float64(attempt)))
			var httpErr *httpStatusError
			if errors.As(err, &httpErr) && httpErr.RetryAfter > wait {
				wait = httpErr.RetryAfter
			}
			if wait > rc.MaxWait {
				wait = rc.MaxWait
			}
			slog.Debug("retrying", slog.Int("attempt", attempt+1), slog.Duration("wait", wait), slog.Any("error", err))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}
	}
	return zero, lastErr
}

// RetryHTTP sends a request with retry on transport errors and throttle or
// server-error statuses. A 429/503 Retry-After header is carried into the
// backoff so a YouTube cooldown is respected instead of hammered.
func RetryHTTP(ctx context.Context, rc RetryConfig, fn func() (*http.Response, error)) (*http.Response, error) {
	return RetryDo(ctx, rc, func() (*http.Response, error) {
		resp, err := fn()
		if err != nil {
			return nil, err
		}
		if isRetryableStatus(resp.StatusCode) {
			after := parseRetryAfter(resp.Header.Get("Retry-After"))
			resp.Body.Close()
			return nil, &httpStatusError{StatusCode: resp.StatusCode, RetryAfter: after}
		}
		return resp, nil
	})
}

// httpStatusError wraps a retryable HTTP status, with the server's cooldown
// hint when one was sent.
type httpStatusError struct {
	StatusCode int
	RetryAfter time.Duration
}

func (e *httpStatusError) Error() string {
	return http.StatusText(e.StatusCode)
}

// parseRetryAfter reads the delay-seconds form of a Retry-After header.
// YouTube sends plain seconds; the HTTP-date form is ignored.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// isRetryable reports whether an error is transient. Throttle/server
// statuses, connection failures, DNS errors, and timeouts qualify; anything
// else (quota 403s, missing captions, parse failures) surfaces to the caller
// so the next transcript path can take over.
func isRetryable(err error) bool {
	var httpErr *httpStatusError
	if errors.As(err, &httpErr) {
		return true // already filtered by isRetryableStatus
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	// net.Error includes OpError, so check after OpError.
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}

// isRetryableStatus reports whether an HTTP status is worth retrying.
// 403 is deliberately absent: on the Data API it means quota, and the key
// fallback should run instead of a backoff loop.
func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
