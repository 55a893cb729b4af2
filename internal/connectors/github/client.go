package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/sentinel/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.UpdateFetcher = (*Client)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultPerPage is the page size requested from every list endpoint.
	DefaultPerPage = 100

	// DefaultMaxPages bounds how many pages one list call follows.
	DefaultMaxPages = 3
)

// Options configures a Client. Zero values select defaults.
type Options struct {
	// BaseURL overrides the API root (GitHub Enterprise, tests).
	BaseURL string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// PerPage is the per_page query parameter.
	PerPage int

	// MaxPages caps pagination. Negative means unlimited.
	MaxPages int

	// RequestsPerSecond sets the proactive throttle. Zero disables it.
	RequestsPerSecond float64

	// HTTPClient replaces the oauth2 client entirely. Token is ignored.
	HTTPClient *http.Client
}

// Client wraps the go-github client with rate limiting and paging.
type Client struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
	perPage     int
	maxPages    int
}

// NewClient creates a GitHub client authenticated with a static token.
func NewClient(ctx context.Context, token string, opts Options) (*Client, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = opts.Timeout
		if httpClient.Timeout <= 0 {
			httpClient.Timeout = DefaultTimeout
		}
	}

	client := gh.NewClient(httpClient)
	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("github: base url: %w", err)
		}
		client.BaseURL = u
	}

	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	maxPages := opts.MaxPages
	if maxPages == 0 {
		maxPages = DefaultMaxPages
	}

	return &Client{
		gh:          client,
		rateLimiter: NewRateLimiter(opts.RequestsPerSecond),
		perPage:     perPage,
		maxPages:    maxPages,
	}, nil
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// do runs one API call under the rate limiter. When the call is rejected
// for quota exhaustion it sleeps until the mirrored reset and retries the
// identical call once. A second exhaustion returns *RateLimitError.
func (c *Client) do(ctx context.Context, op string, call func(ctx context.Context) (*gh.Response, error)) error {
	// Quota is tracked here; go-github must not short-circuit the retry.
	ctx = context.WithValue(ctx, gh.BypassRateLimitCheck, true)

	for attempt := 0; attempt < 2; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s: rate limit wait: %w", op, err)
		}

		resp, err := call(ctx)
		var httpResp *http.Response
		if resp != nil {
			httpResp = resp.Response
		}
		c.rateLimiter.UpdateFromResponse(httpResp)

		if err == nil {
			return nil
		}
		if !c.rateLimiter.Exhausted(httpResp, err) {
			return c.wrapError(err, op)
		}
		if attempt > 0 {
			break
		}
		if err := c.rateLimiter.WaitForReset(ctx); err != nil {
			return fmt.Errorf("%s: rate limit wait: %w", op, err)
		}
	}

	return c.rateLimiter.exhaustedError()
}

// nextPage reports whether paging should continue after page number page
// (1-based) given the response.
func (c *Client) nextPage(resp *gh.Response, page int) bool {
	if resp == nil || resp.NextPage == 0 {
		return false
	}
	return c.maxPages < 0 || page < c.maxPages
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return c.rateLimiter.exhaustedError()
	}

	return fmt.Errorf("%s: %w", operation, err)
}
