package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "CVE-2023-1234", r.URL.Query().Get("cve"))
		assert.Equal(t, "51234", r.URL.Query().Get("edb"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results": [{"title": "Some RCE", "platform": "linux"}]}`)
	}))
	defer testServer.Close()

	lookup := NewHTTPExploitLookup(testServer.URL)

	candidates, err := lookup.Search(context.Background(), "CVE-2023-1234", "51234")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Some RCE", candidates[0].Title)
	assert.Equal(t, "linux", candidates[0].Platform)
}

func TestSearchErrorStatus(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer testServer.Close()

	lookup := NewHTTPExploitLookup(testServer.URL)

	_, err := lookup.Search(context.Background(), "CVE-2023-1234", "51234")
	assert.Error(t, err)
}

func TestSearchWithoutEndpoint(t *testing.T) {
	// Unconfigured lookup behaves as "no live data"
	lookup := NewHTTPExploitLookup("")

	candidates, err := lookup.Search(context.Background(), "CVE-2023-1234", "51234")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}
