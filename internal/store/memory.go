package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cvehub/cvehub-backend/model"
)

// MemoryStore is a mutex-guarded in-memory Store used by tests and local
// development without an ArangoDB instance.
type MemoryStore struct {
	mu       sync.Mutex
	nextKey  int
	cves     map[string]*model.CVE     // keyed by cve_id
	exploits map[string]*model.Exploit // keyed by exploit_id
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cves:     make(map[string]*model.CVE),
		exploits: make(map[string]*model.Exploit),
	}
}

// UpsertCVE inserts or updates a CVE keyed on cve_id, preserving the
// surrogate key, created_at, exploit_id and actively_exploited on update
func (s *MemoryStore) UpsertCVE(_ context.Context, cve *model.CVE) (*model.CVE, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()

	if existing, ok := s.cves[cve.CveID]; ok {
		existing.Title = cve.Title
		existing.Description = cve.Description
		existing.CvssScore = cve.CvssScore
		existing.Severity = cve.Severity
		existing.Vendor = cve.Vendor
		existing.PublishedDate = cve.PublishedDate
		existing.UpdatedDate = cve.UpdatedDate
		existing.Tags = cve.Tags
		existing.UpdatedAt = now
		copied := *existing
		return &copied, nil
	}

	s.nextKey++
	stored := *cve
	stored.Key = fmt.Sprintf("%d", s.nextKey)
	stored.ExploitID = nil
	stored.ActivelyExploited = false
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.cves[cve.CveID] = &stored

	copied := stored
	return &copied, nil
}

// GetCVE returns the CVE with the given id, or nil when absent
func (s *MemoryStore) GetCVE(_ context.Context, cveID string) (*model.CVE, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cve, ok := s.cves[cveID]
	if !ok {
		return nil, nil
	}
	copied := *cve
	return &copied, nil
}

// ListCVEs returns stored CVEs, optionally filtered by severity
func (s *MemoryStore) ListCVEs(_ context.Context, severity string, limit int) ([]model.CVE, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cves []model.CVE
	for _, cve := range s.cves {
		if severity != "" && cve.Severity != severity {
			continue
		}
		cves = append(cves, *cve)
		if len(cves) >= limit {
			break
		}
	}
	return cves, nil
}

// MarkActivelyExploited flags a CVE as present in the KEV catalog
func (s *MemoryStore) MarkActivelyExploited(_ context.Context, cveID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cve, ok := s.cves[cveID]; ok {
		cve.ActivelyExploited = true
		cve.UpdatedAt = time.Now().UTC()
	}
	return nil
}

// SetPrimaryExploitID links an exploit id to a CVE, first-write-wins
func (s *MemoryStore) SetPrimaryExploitID(_ context.Context, cveID, exploitID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cve, ok := s.cves[cveID]
	if !ok || cve.ExploitID != nil {
		return nil
	}
	cve.ExploitID = &exploitID
	cve.UpdatedAt = time.Now().UTC()
	return nil
}

// ExploitExists reports whether an exploit with the given EDB id is stored
func (s *MemoryStore) ExploitExists(_ context.Context, exploitID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.exploits[exploitID]
	return ok, nil
}

// InsertExploit stores a new exploit row
func (s *MemoryStore) InsertExploit(_ context.Context, exploit *model.Exploit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextKey++
	stored := *exploit
	stored.Key = fmt.Sprintf("%d", s.nextKey)
	s.exploits[exploit.ExploitID] = &stored
	return nil
}

// ListExploitsForCVE returns all exploit rows referencing the given CVE
func (s *MemoryStore) ListExploitsForCVE(_ context.Context, cveID string) ([]model.Exploit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exploits []model.Exploit
	for _, e := range s.exploits {
		if e.CveID == cveID {
			exploits = append(exploits, *e)
		}
	}
	return exploits, nil
}

// Ensure compile-time interface check
var _ Store = (*MemoryStore)(nil)
