package nvd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPage(t *testing.T) {
	var gotQuery string
	var gotUserAgent string

	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"resultsPerPage": 1,
			"startIndex": 0,
			"totalResults": 42,
			"vulnerabilities": [
				{"cve": {"id": "CVE-2023-1234", "descriptions": [{"lang": "en", "value": "test"}]}}
			]
		}`)
	}))
	defer testServer.Close()

	client := NewClient(testServer.URL, "")

	feed, err := client.FetchPage(context.Background(), 2023, 0, 1000)
	require.NoError(t, err)

	assert.Equal(t, 42, feed.TotalResults)
	require.Len(t, feed.Vulnerabilities, 1)
	assert.Equal(t, "CVE-2023-1234", feed.Vulnerabilities[0].CVE.ID)

	assert.Contains(t, gotQuery, "startIndex=0")
	assert.Contains(t, gotQuery, "resultsPerPage=1000")
	assert.Contains(t, gotQuery, "pubStartDate=2023-01-01")
	assert.Contains(t, gotQuery, "pubEndDate=2023-12-31")
	assert.Equal(t, "cvehub-backend/1.0", gotUserAgent)
}

func TestFetchPageSendsAPIKey(t *testing.T) {
	var gotKey string

	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("apiKey")
		fmt.Fprint(w, `{"totalResults": 0, "vulnerabilities": []}`)
	}))
	defer testServer.Close()

	client := NewClient(testServer.URL, "secret")

	_, err := client.FetchPage(context.Background(), 2023, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, "secret", gotKey)
}

func TestFetchPageStatusError(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, "rate limited")
	}))
	defer testServer.Close()

	client := NewClient(testServer.URL, "")

	_, err := client.FetchPage(context.Background(), 2023, 0, 1000)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "rate limited")
}

func TestFetchPageBadJSON(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "not json")
	}))
	defer testServer.Close()

	client := NewClient(testServer.URL, "")

	_, err := client.FetchPage(context.Background(), 2023, 0, 1000)
	assert.Error(t, err)
}
