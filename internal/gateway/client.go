package gateway

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"golang.org/x/oauth2"
)

// NewHTTPClient builds the HTTP client shared by the REST and GraphQL gateways.
// Requests carry the bearer token when one is given. Secondary rate limits are
// detected and logged at the transport but never slept on there, since the
// single sleep budget is zero. A secondary limit whose reset is already past
// is retried by the transport immediately; every other rate limit surfaces to
// the bounded retry in withRetry.
func NewHTTPClient(token string, logger *log.Logger) (*http.Client, error) {
	waiter, err := github_ratelimit.NewRateLimitWaiter(nil,
		github_ratelimit.WithSingleSleepLimit(0, func(cc *github_ratelimit.CallbackContext) {
			logger.Printf("Secondary rate limit detected on %s (resets at %s)", cc.Request.URL.Path, cc.SleepUntil.Format("15:04:05"))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	if token == "" {
		return &http.Client{Transport: waiter}, nil
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &http.Client{
		Transport: &oauth2.Transport{
			Base:   waiter,
			Source: ts,
		},
	}, nil
}
