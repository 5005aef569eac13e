// Package services provides internal service implementations for the backend.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cvehub/cvehub-backend/internal/exploitdb"
)

// HTTPExploitLookup implements exploitdb.Lookup against an exploit search
// service (an ExploitDB mirror exposing a JSON search endpoint).
type HTTPExploitLookup struct {
	BaseURL    string
	httpClient *http.Client
}

// NewHTTPExploitLookup creates a lookup client for the given search endpoint
func NewHTTPExploitLookup(baseURL string) *HTTPExploitLookup {
	return &HTTPExploitLookup{
		BaseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Search queries the lookup service for exploit candidates matching the CVE
// and EDB id. A non-2xx response is an error; the resolver decides how to
// degrade.
func (l *HTTPExploitLookup) Search(ctx context.Context, cveID, edbID string) ([]exploitdb.Candidate, error) {
	if l.BaseURL == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/search?cve=%s&edb=%s", l.BaseURL, url.QueryEscape(cveID), url.QueryEscape(edbID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exploit lookup returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result struct {
		Results []exploitdb.Candidate `json:"results"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}

	return result.Results, nil
}

// Ensure compile-time interface check
var _ exploitdb.Lookup = (*HTTPExploitLookup)(nil)
