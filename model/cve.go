// Package model defines the document types stored in ArangoDB and the
// canonical representations exchanged between the ingestion pipeline,
// the persistence layer and the API.
package model

import "time"

// Severity bands as reported by NVD CVSS metrics.
const (
	SeverityCritical = "CRITICAL"
	SeverityHigh     = "HIGH"
	SeverityMedium   = "MEDIUM"
	SeverityLow      = "LOW"
	SeverityUnknown  = "UNKNOWN"
)

// CVE represents one vulnerability disclosure as stored in the cve collection.
// CveID is the natural key (CVE-YYYY-NNNN+); Key is the ArangoDB surrogate.
type CVE struct {
	Key               string    `json:"_key,omitempty"`
	CveID             string    `json:"cve_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	CvssScore         *string   `json:"cvss_score"` // decimal string, nil when no metric block exists
	Severity          string    `json:"severity"`
	Vendor            *string   `json:"vendor"`
	PublishedDate     *string   `json:"published_date"`
	UpdatedDate       *string   `json:"updated_date"`
	Tags              []string  `json:"tags"`
	ActivelyExploited bool      `json:"actively_exploited"` // set by the KEV matcher, not by ingestion
	ExploitID         *string   `json:"exploit_id"`         // primary linked EDB id, first-write-wins
	ObjType           string    `json:"objtype"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewCVE creates a CVE document with defaults applied
func NewCVE(cveID string) *CVE {
	now := time.Now().UTC()
	return &CVE{
		CveID:     cveID,
		Severity:  SeverityUnknown,
		Tags:      []string{},
		ObjType:   "CVE",
		CreatedAt: now,
		UpdatedAt: now,
	}
}
