package nvd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the public NVD 2.0 CVE feed endpoint
const DefaultBaseURL = "https://services.nvd.nist.gov/rest/json/cves/2.0"

const userAgent = "cvehub-backend/1.0"

// StatusError is returned for non-2xx responses so the caller can decide
// how to back off. The client itself never retries.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("nvd: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client fetches pages of CVE records from the NVD feed
type Client struct {
	BaseURL    string
	APIKey     string
	httpClient *http.Client
}

// NewClient creates an NVD client. apiKey may be empty; the public feed
// allows unauthenticated access at a lower rate limit.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

// FetchPage retrieves one page of CVE records published in the given year.
// startIndex is the zero-based offset into the year's result set.
func (c *Client) FetchPage(ctx context.Context, year, startIndex, resultsPerPage int) (*FeedResponse, error) {
	url := fmt.Sprintf("%s?pubStartDate=%d-01-01T00:00:00.000&pubEndDate=%d-12-31T23:59:59.999&startIndex=%d&resultsPerPage=%d",
		c.BaseURL, year, year, startIndex, resultsPerPage)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("nvd: build request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("apiKey", c.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nvd: fetch page year=%d startIndex=%d: %w", year, startIndex, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("nvd: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(body)
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: msg}
	}

	var feed FeedResponse
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("nvd: decode response: %w", err)
	}

	return &feed, nil
}
