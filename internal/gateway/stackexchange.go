package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/google/go-querystring/query"
)

const (
	defaultStackExchangeURL = "https://api.stackexchange.com/2.3/"
	stackOverflowSite       = "stackoverflow"
)

// TagCounter returns the number of questions carrying a tag.
// Implementations return 0 instead of failing.
type TagCounter interface {
	FetchTagCount(ctx context.Context, tag string) int
}

// StackExchangeGateway queries the Stack Exchange tag info endpoint.
type StackExchangeGateway struct {
	httpClient *http.Client
	baseURL    *url.URL
	key        string
	logger     *log.Logger
}

type tagInfoOptions struct {
	Site string `url:"site"`
	Key  string `url:"key,omitempty"`
}

// tagInfoResponse is the common Stack Exchange wrapper around tag items.
type tagInfoResponse struct {
	Items []struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	} `json:"items"`
	QuotaRemaining *int   `json:"quota_remaining"`
	ErrorID        int    `json:"error_id"`
	ErrorName      string `json:"error_name"`
	ErrorMessage   string `json:"error_message"`
}

// NewStackExchangeGateway creates a gateway using httpClient; key is the optional app key.
func NewStackExchangeGateway(httpClient *http.Client, key string, logger *log.Logger) *StackExchangeGateway {
	baseURL, _ := url.Parse(defaultStackExchangeURL)
	return &StackExchangeGateway{
		httpClient: httpClient,
		baseURL:    baseURL,
		key:        key,
		logger:     logger,
	}
}

// FetchTagCount returns the question count for tag on Stack Overflow, or 0 on any failure.
func (s *StackExchangeGateway) FetchTagCount(ctx context.Context, tag string) int {
	s.logger.Printf("Fetching Stack Overflow count for tag %s...", tag)
	count, err := s.fetchTagCount(ctx, tag)
	if err != nil {
		s.logger.Printf("Error fetching Stack Overflow count for tag %s: %v", tag, err)
		return 0
	}
	return count
}

func (s *StackExchangeGateway) fetchTagCount(ctx context.Context, tag string) (int, error) {
	params, err := query.Values(tagInfoOptions{Site: stackOverflowSite, Key: s.key})
	if err != nil {
		return 0, fmt.Errorf("failed to encode query: %w", err)
	}
	u := s.baseURL.JoinPath("tags", tag, "info")
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to call tag info endpoint: %w", err)
	}
	defer resp.Body.Close()

	var body tagInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode tag info (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("status %d: %s (error_id %d): %s", resp.StatusCode, body.ErrorName, body.ErrorID, body.ErrorMessage)
	}
	if body.QuotaRemaining != nil {
		s.logger.Printf("Stack Exchange quota remaining: %d", *body.QuotaRemaining)
	}
	if len(body.Items) == 0 {
		return 0, nil
	}
	return body.Items[0].Count, nil
}
