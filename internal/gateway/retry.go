package gateway

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
)

// RetryPolicy bounds how often a rate-limited call is retried.
type RetryPolicy struct {
	// MaxRetries is the number of extra attempts after the first one.
	MaxRetries int
	// MaxWait is the longest single delay worth waiting for; longer delays give up at once.
	// Zero means no bound.
	MaxWait time.Duration
	// FallbackWait is used when the rate limit error carries no delay of its own.
	FallbackWait time.Duration

	sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy retries both primary and secondary rate limits twice.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   2,
		MaxWait:      time.Hour,
		FallbackWait: time.Minute,
	}
}

func (p RetryPolicy) wait(ctx context.Context, d time.Duration) error {
	if p.sleep != nil {
		return p.sleep(ctx, d)
	}
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// rateLimitDelay reports whether err is a rate limit and how long the API asked us to wait.
func (p RetryPolicy) rateLimitDelay(err error) (time.Duration, string, bool) {
	var rlErr *github.RateLimitError
	if errors.As(err, &rlErr) {
		return max(time.Until(rlErr.Rate.Reset.Time), 0), "primary", true
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		if d := abuseErr.GetRetryAfter(); d > 0 {
			return d, "secondary", true
		}
		return p.FallbackWait, "secondary", true
	}
	// GraphQL reports rate limits as plain errors.
	if strings.Contains(strings.ToLower(err.Error()), "rate limit") {
		return p.FallbackWait, "graphql", true
	}
	return 0, "", false
}

// withRetry runs call, retrying rate-limited attempts up to p.MaxRetries times.
// Any other error is returned immediately.
func withRetry[T any](ctx context.Context, p RetryPolicy, logger *log.Logger, op string, call func(context.Context) (T, *github.Response, error)) (T, *github.Response, error) {
	for attempt := 0; ; attempt++ {
		v, resp, err := call(ctx)
		if err == nil {
			return v, resp, nil
		}
		delay, kind, limited := p.rateLimitDelay(err)
		if !limited {
			return v, resp, err
		}
		if attempt >= p.MaxRetries {
			logger.Printf("%s: %s rate limit persists after %d retries, giving up", op, kind, p.MaxRetries)
			return v, resp, err
		}
		if p.MaxWait > 0 && delay > p.MaxWait {
			logger.Printf("%s: %s rate limit resets in %s, longer than %s, giving up", op, kind, delay.Round(time.Second), p.MaxWait)
			return v, resp, err
		}
		logger.Printf("%s: %s rate limit hit, retry %d/%d in %s", op, kind, attempt+1, p.MaxRetries, delay.Round(time.Second))
		if werr := p.wait(ctx, delay); werr != nil {
			return v, resp, werr
		}
	}
}
