package exploitdb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLookup struct {
	candidates []Candidate
	err        error
}

func (s *stubLookup) Search(_ context.Context, _, _ string) ([]Candidate, error) {
	return s.candidates, s.err
}

func TestResolveLive(t *testing.T) {
	lookup := &stubLookup{candidates: []Candidate{{
		Title:         "Apache HTTPd mod_proxy RCE",
		Description:   "Remote code execution via crafted request.",
		Type:          "webapps",
		Platform:      "linux",
		Author:        "anon",
		DatePublished: "2023-05-01",
		SourceURL:     "https://www.exploit-db.com/exploits/51234",
	}}}

	resolver := NewResolver(lookup, zap.NewNop())
	detail := resolver.Resolve(context.Background(), "51234", "CVE-2023-1234")

	assert.Equal(t, SourceLive, detail.Source)
	assert.Equal(t, "Apache HTTPd mod_proxy RCE", detail.Title)
	assert.Equal(t, "webapps", detail.Type)
	assert.Equal(t, "linux", detail.Platform)
}

func TestResolveLiveDefaultsMissingFields(t *testing.T) {
	// A sparse live result still yields a fully populated detail
	lookup := &stubLookup{candidates: []Candidate{{Title: "Some exploit"}}}

	resolver := NewResolver(lookup, zap.NewNop())
	detail := resolver.Resolve(context.Background(), "40000", "CVE-2022-0001")

	assert.Equal(t, SourceLive, detail.Source)
	assert.Equal(t, "Some exploit", detail.Title)
	assert.Equal(t, "unknown", detail.Platform)
	assert.Equal(t, "unknown", detail.Author)
	assert.Contains(t, detail.Description, "CVE-2022-0001")
	assert.Equal(t, "https://www.exploit-db.com/exploits/40000", detail.SourceURL)
}

func TestResolveEmptyLookupYieldsPlaceholder(t *testing.T) {
	resolver := NewResolver(&stubLookup{}, zap.NewNop())
	detail := resolver.Resolve(context.Background(), "99999", "CVE-2023-9999")

	assert.Equal(t, SourcePlaceholder, detail.Source)
	assert.Contains(t, detail.Title, "EDB-99999")
	assert.Contains(t, detail.Title, "CVE-2023-9999")
	assert.Equal(t, "https://www.exploit-db.com/exploits/99999", detail.SourceURL)
}

func TestResolveLookupErrorDegradesToPlaceholder(t *testing.T) {
	lookup := &stubLookup{err: errors.New("connection refused")}

	resolver := NewResolver(lookup, zap.NewNop())
	detail := resolver.Resolve(context.Background(), "12345", "CVE-2021-0001")

	require.Equal(t, SourcePlaceholder, detail.Source)
	assert.Contains(t, detail.Title, "EDB-12345")
}
