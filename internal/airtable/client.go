// Package airtable provides a minimal read-only client for the Airtable API.
package airtable

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/pkoskela/airboard/internal/errors"
	"github.com/pkoskela/airboard/internal/ratelimit"
)

const (
	defaultBaseURL = "https://api.airtable.com/v0"
	// Airtable allows 5 requests per second per base.
	defaultRatePerSecond = 5
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is an Airtable API client scoped to a single base.
type Client struct {
	apiKey      string
	baseID      string
	baseURL     string
	httpClient  HTTPDoer
	rateLimiter *ratelimit.Limiter
}

// NewClient creates a new Airtable client for the given API key and base.
func NewClient(apiKey, baseID string, opts ...Option) *Client {
	client := &Client{
		apiKey:      apiKey,
		baseID:      baseID,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		rateLimiter: ratelimit.New("Airtable", defaultRatePerSecond),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the Airtable API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// ListRecords fetches every record in the named table, following offset
// pagination until the API stops returning one.
func (c *Client) ListRecords(ctx context.Context, table string) ([]Record, error) {
	var all []Record
	offset := ""

	for {
		page, err := c.fetchPage(ctx, table, offset)
		if err != nil {
			return nil, err
		}

		all = append(all, page.Records...)

		if page.Offset == "" {
			return all, nil
		}
		offset = page.Offset
	}
}

func (c *Client) fetchPage(ctx context.Context, table, offset string) (*listResponse, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(table))
	if offset != "" {
		endpoint += "?" + url.Values{"offset": {offset}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records from %q: %w", table, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.responseError(table, resp.StatusCode, body)
	}

	var page listResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response for %q: %w", table, err)
	}

	return &page, nil
}

func (c *Client) responseError(table string, status int, body []byte) error {
	apiMessage := ""
	var envelope errorResponse
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiMessage = envelope.Error.Message
		if apiMessage == "" {
			apiMessage = envelope.Error.Type
		}
	}

	switch status {
	case http.StatusNotFound:
		return apperrors.NewTableNotFoundError(table)
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.NewAPIAccessError(status, apiMessage)
	case http.StatusTooManyRequests:
		return apperrors.NewRateLimitError("Airtable API rate limit reached")
	default:
		return fmt.Errorf("airtable API returned status %d for %q. Response: %s", status, table, string(body))
	}
}
