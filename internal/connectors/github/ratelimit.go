package github

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/time/rate"
)

const (
	// ProactiveRate is the default proactive throttle rate (~1.2 req/sec = 4320/hr).
	ProactiveRate = 1.2

	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter mirrors the server-side quota and throttles proactively.
// The quota is owned by GitHub; the counters here are advisory copies taken
// from the most recent response.
type RateLimiter struct {
	mu         sync.Mutex
	remaining  int           // From API header
	limit      int           // From API header
	resetEpoch int64         // From API header, Unix seconds
	bucket     *rate.Limiter // Proactive throttling
}

// NewRateLimiter creates a rate limiter allowing rps requests per second.
// A non-positive rps disables proactive throttling.
func NewRateLimiter(rps float64) *RateLimiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &RateLimiter{
		bucket: rate.NewLimiter(limit, 1),
	}
}

// Wait blocks until the proactive throttle admits another request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.bucket.Wait(ctx)
}

// UpdateFromResponse records quota state from response headers.
// Absent or unparseable remaining/reset headers record 0.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.remaining = headerInt(resp.Header, HeaderRateRemaining)
	r.resetEpoch = int64(headerInt(resp.Header, HeaderRateReset))

	if limit := resp.Header.Get(HeaderRateLimit); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			r.limit = val
		}
	}

	// Secondary limits carry Retry-After instead of a reset epoch.
	if isQuotaStatus(resp.StatusCode) {
		if seconds := headerInt(resp.Header, HeaderRetryAfter); seconds > 0 {
			after := time.Now().Add(time.Duration(seconds) * time.Second).Unix()
			if after > r.resetEpoch {
				r.resetEpoch = after
			}
		}
	}
}

// Exhausted reports whether a failed call was rejected for quota: a 403
// (or 429) while the mirrored remaining count is zero, or go-github
// classifying the failure as a rate limit.
func (r *RateLimiter) Exhausted(resp *http.Response, err error) bool {
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return true
	}
	if resp == nil || !isQuotaStatus(resp.StatusCode) {
		return false
	}
	return r.Remaining() == 0
}

// WaitForReset sleeps until the mirrored reset time. It returns at once
// when the reset is not in the future.
func (r *RateLimiter) WaitForReset(ctx context.Context) error {
	wait := time.Until(r.ResetTime())
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Remaining returns the current remaining requests.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// Limit returns the rate limit.
func (r *RateLimiter) Limit() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.limit
}

// ResetTime returns the rate limit reset time.
func (r *RateLimiter) ResetTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Unix(r.resetEpoch, 0)
}

func (r *RateLimiter) exhaustedError() *RateLimitError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &RateLimitError{
		ResetAt:   time.Unix(r.resetEpoch, 0),
		Remaining: r.remaining,
		Limit:     r.limit,
	}
}

func isQuotaStatus(code int) bool {
	return code == http.StatusForbidden || code == http.StatusTooManyRequests
}

func headerInt(h http.Header, key string) int {
	val, err := strconv.Atoi(h.Get(key))
	if err != nil {
		return 0
	}
	return val
}
