// Package store implements the persistence gateway for CVE and exploit
// records. The ingestion pipeline depends on the Store interface only; the
// ArangoDB implementation backs production and the in-memory one backs tests.
package store

import (
	"context"

	"github.com/cvehub/cvehub-backend/model"
)

// Store is the persistence gateway contract.
//
// UpsertCVE is idempotent and keyed on the CVE id: re-ingesting the same id
// updates mutable fields in place, preserving the surrogate key, the
// actively-exploited flag and any already-linked primary exploit id.
// InsertExploit does not deduplicate; callers guard it with ExploitExists.
// SetPrimaryExploitID has first-write-wins semantics.
//
// Implementations must tolerate concurrent calls for distinct identifiers;
// the pipeline never issues concurrent calls for the same identifier.
type Store interface {
	UpsertCVE(ctx context.Context, cve *model.CVE) (*model.CVE, error)
	GetCVE(ctx context.Context, cveID string) (*model.CVE, error)
	ListCVEs(ctx context.Context, severity string, limit int) ([]model.CVE, error)
	MarkActivelyExploited(ctx context.Context, cveID string) error
	SetPrimaryExploitID(ctx context.Context, cveID, exploitID string) error

	ExploitExists(ctx context.Context, exploitID string) (bool, error)
	InsertExploit(ctx context.Context, exploit *model.Exploit) error
	ListExploitsForCVE(ctx context.Context, cveID string) ([]model.Exploit, error)
}
