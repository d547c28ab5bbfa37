package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/go-github/v62/github"

	"github.com/pateldev/github-contributions/internal/domain"
)

// retryPolicy bounds the per-page rate limit handling: instead of sleeping
// indefinitely, each page is retried at most maxAttempts times with a fixed
// cooldown between attempts.
type retryPolicy struct {
	maxAttempts int
	cooldown    time.Duration
}

var defaultRetryPolicy = retryPolicy{
	maxAttempts: 3,
	cooldown:    60 * time.Second,
}

// fetchPage runs one page fetch, classifying failures by upstream status.
// Rate limit responses are retried against the same page after a cooldown;
// a 404 maps to a not-found error, any other non-success status maps to an
// upstream error. The caller keeps whatever it accumulated before the error.
func (g *GitHubGateway) fetchPage(ctx context.Context, resource string, call func() (*github.Response, error)) error {
	for attempt := 1; ; attempt++ {
		resp, err := call()
		if err == nil {
			return nil
		}

		status := 0
		if resp != nil && resp.Response != nil {
			status = resp.StatusCode
		}

		switch {
		case status == http.StatusNotFound:
			return domain.NewNotFoundError(resource)
		case isRateLimited(resp, err):
			if attempt >= g.retry.maxAttempts {
				g.logger.Printf("Giving up on %s: rate limited on every attempt.", resource)
				return domain.NewRateLimitedError(g.retry.maxAttempts)
			}
			wait := g.waitDuration(resp)
			g.logger.Printf("Rate limited fetching %s; retrying in %s (attempt %d/%d).", resource, wait, attempt, g.retry.maxAttempts)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		case status != 0:
			return domain.NewUpstreamError(status)
		default:
			return fmt.Errorf("github request for %s failed: %w", resource, err)
		}
	}
}

// isRateLimited recognizes both the typed rate limit errors go-github raises
// and the raw status shapes: 429, or 403 with the remaining quota at zero.
func isRateLimited(resp *github.Response, err error) bool {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return true
	}
	if resp == nil || resp.Response == nil {
		return false
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0"
}

// waitDuration prefers the Retry-After header when the upstream provides one.
// The wait is capped at the policy cooldown so a large header value cannot
// stall the request beyond the bounded budget.
func (g *GitHubGateway) waitDuration(resp *github.Response) time.Duration {
	wait := g.retry.cooldown
	if resp == nil || resp.Response == nil {
		return wait
	}
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			if d := time.Duration(secs) * time.Second; d < wait {
				wait = d
			}
		}
	}
	return wait
}
