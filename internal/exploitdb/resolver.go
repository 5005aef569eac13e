// Package exploitdb resolves ExploitDB metadata for exploit references
// discovered during CVE ingestion. A resolution always yields a persistable
// detail record: when the live lookup has nothing, a deterministic
// placeholder referencing the CVE and EDB id is synthesized instead.
package exploitdb

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cvehub/cvehub-backend/model"
)

// Candidate is one exploit-detail result returned by a Lookup
type Candidate struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	Platform      string `json:"platform"`
	Author        string `json:"author"`
	DatePublished string `json:"date_published"`
	SourceURL     string `json:"source_url"`
}

// Lookup is the external exploit-lookup collaborator. Search returns zero
// or more candidates for the given CVE and EDB id.
type Lookup interface {
	Search(ctx context.Context, cveID, edbID string) ([]Candidate, error)
}

// Detail is the resolved exploit metadata, tagged with its source so
// downstream consumers can tell live data from synthesized placeholders.
type Detail struct {
	Title         string
	Description   string
	Type          string
	Platform      string
	Author        string
	DatePublished string
	SourceURL     string
	Source        string // SourceLive or SourcePlaceholder
}

// Detail sources
const (
	SourceLive        = model.ExploitSourceLive
	SourcePlaceholder = model.ExploitSourcePlaceholder
)

// Resolver turns an exploit reference into a persistable Detail
type Resolver struct {
	lookup Lookup
	logger *zap.SugaredLogger
}

// NewResolver creates a Resolver backed by the given lookup collaborator
func NewResolver(lookup Lookup, logger *zap.Logger) *Resolver {
	return &Resolver{
		lookup: lookup,
		logger: logger.Sugar(),
	}
}

// Resolve returns exploit metadata for the given EDB id. Lookup failures
// are logged and degrade to a placeholder; they never propagate, since a
// single detail failure must not abort an ingestion run.
func (r *Resolver) Resolve(ctx context.Context, edbID, cveID string) Detail {
	candidates, err := r.lookup.Search(ctx, cveID, edbID)
	if err != nil {
		r.logger.Warnf("exploit lookup failed for EDB-%s (%s): %v", edbID, cveID, err)
		return placeholderDetail(edbID, cveID)
	}

	if len(candidates) == 0 {
		return placeholderDetail(edbID, cveID)
	}

	c := candidates[0]
	placeholder := placeholderDetail(edbID, cveID)
	return Detail{
		Title:         orDefault(c.Title, placeholder.Title),
		Description:   orDefault(c.Description, placeholder.Description),
		Type:          orDefault(c.Type, placeholder.Type),
		Platform:      orDefault(c.Platform, placeholder.Platform),
		Author:        orDefault(c.Author, placeholder.Author),
		DatePublished: orDefault(c.DatePublished, placeholder.DatePublished),
		SourceURL:     orDefault(c.SourceURL, placeholder.SourceURL),
		Source:        SourceLive,
	}
}

func placeholderDetail(edbID, cveID string) Detail {
	return Detail{
		Title:         fmt.Sprintf("Exploit EDB-%s for %s", edbID, cveID),
		Description:   fmt.Sprintf("Exploit referenced by %s in the NVD feed. Details pending retrieval from ExploitDB entry %s.", cveID, edbID),
		Type:          "unknown",
		Platform:      "unknown",
		Author:        "unknown",
		DatePublished: "",
		SourceURL:     fmt.Sprintf("https://www.exploit-db.com/exploits/%s", edbID),
		Source:        SourcePlaceholder,
	}
}

func orDefault(val, def string) string {
	if val == "" {
		return def
	}
	return val
}
