package store

import (
	"context"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"

	"github.com/cvehub/cvehub-backend/database"
	"github.com/cvehub/cvehub-backend/model"
	"github.com/cvehub/cvehub-backend/util"
)

// ArangoStore is the ArangoDB-backed persistence gateway
type ArangoStore struct {
	db database.DBConnection
}

// NewArangoStore creates a store on top of an initialized DB connection
func NewArangoStore(db database.DBConnection) *ArangoStore {
	return &ArangoStore{db: db}
}

// UpsertCVE inserts or updates a CVE document keyed on cve_id. The update
// branch leaves _key, created_at, actively_exploited and exploit_id alone so
// re-ingestion never clobbers KEV flags or an existing exploit link.
func (s *ArangoStore) UpsertCVE(ctx context.Context, cve *model.CVE) (*model.CVE, error) {
	now := time.Now().UTC()

	query := `
		UPSERT { cve_id: @cve_id }
		INSERT @insertDoc
		UPDATE @updateDoc
		IN cve
		RETURN NEW
	`

	insertDoc := map[string]interface{}{
		"cve_id":             cve.CveID,
		"title":              cve.Title,
		"description":        cve.Description,
		"cvss_score":         cve.CvssScore,
		"severity":           cve.Severity,
		"vendor":             cve.Vendor,
		"published_date":     cve.PublishedDate,
		"updated_date":       cve.UpdatedDate,
		"tags":               cve.Tags,
		"actively_exploited": false,
		"exploit_id":         nil,
		"objtype":            "CVE",
		"created_at":         now,
		"updated_at":         now,
	}

	updateDoc := map[string]interface{}{
		"title":          cve.Title,
		"description":    cve.Description,
		"cvss_score":     cve.CvssScore,
		"severity":       cve.Severity,
		"vendor":         cve.Vendor,
		"published_date": cve.PublishedDate,
		"updated_date":   cve.UpdatedDate,
		"tags":           cve.Tags,
		"updated_at":     now,
	}

	bindVars := map[string]interface{}{
		"cve_id":    cve.CveID,
		"insertDoc": insertDoc,
		"updateDoc": updateDoc,
	}

	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var stored model.CVE
	if _, err := cursor.ReadDocument(ctx, &stored); err != nil {
		return nil, err
	}

	return &stored, nil
}

// GetCVE returns the CVE with the given id, or nil when absent
func (s *ArangoStore) GetCVE(ctx context.Context, cveID string) (*model.CVE, error) {
	query := `
		FOR c IN cve
			FILTER c.cve_id == @cve_id
			LIMIT 1
			RETURN c
	`
	bindVars := map[string]interface{}{"cve_id": cveID}

	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, nil
	}

	var cve model.CVE
	if _, err := cursor.ReadDocument(ctx, &cve); err != nil {
		return nil, err
	}
	return &cve, nil
}

// ListCVEs returns CVEs ordered by published date descending, optionally
// filtered by severity
func (s *ArangoStore) ListCVEs(ctx context.Context, severity string, limit int) ([]model.CVE, error) {
	query := `
		FOR c IN cve
			FILTER @severity == "" OR c.severity == @severity
			SORT c.published_date DESC
			LIMIT @limit
			RETURN c
	`
	bindVars := map[string]interface{}{
		"severity": severity,
		"limit":    limit,
	}

	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var cves []model.CVE
	for cursor.HasMore() {
		var cve model.CVE
		if _, err := cursor.ReadDocument(ctx, &cve); err != nil {
			return nil, err
		}
		cves = append(cves, cve)
	}
	return cves, nil
}

// MarkActivelyExploited flags a CVE as present in the KEV catalog. Called by
// the external KEV matcher, not by the ingestion pipeline.
func (s *ArangoStore) MarkActivelyExploited(ctx context.Context, cveID string) error {
	query := `
		FOR c IN cve
			FILTER c.cve_id == @cve_id
			UPDATE c WITH { actively_exploited: true, updated_at: @now } IN cve
	`
	bindVars := map[string]interface{}{
		"cve_id": cveID,
		"now":    time.Now().UTC(),
	}

	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return err
	}
	return cursor.Close()
}

// SetPrimaryExploitID links an exploit id to a CVE only when no link exists
// yet. The filter enforces first-write-wins inside the database, so a
// redundant call is a no-op.
func (s *ArangoStore) SetPrimaryExploitID(ctx context.Context, cveID, exploitID string) error {
	query := `
		FOR c IN cve
			FILTER c.cve_id == @cve_id AND c.exploit_id == null
			UPDATE c WITH { exploit_id: @exploit_id, updated_at: @now } IN cve
	`
	bindVars := map[string]interface{}{
		"cve_id":     cveID,
		"exploit_id": exploitID,
		"now":        time.Now().UTC(),
	}

	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return err
	}
	return cursor.Close()
}

// ExploitExists reports whether an exploit with the given EDB id is stored
func (s *ArangoStore) ExploitExists(ctx context.Context, exploitID string) (bool, error) {
	query := `
		FOR e IN exploit
			FILTER e.exploit_id == @exploit_id
			LIMIT 1
			RETURN 1
	`
	bindVars := map[string]interface{}{"exploit_id": exploitID}

	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return false, err
	}
	defer cursor.Close()

	return cursor.HasMore(), nil
}

// InsertExploit stores a new exploit document. The caller owns the
// ExploitExists check; this does not deduplicate.
func (s *ArangoStore) InsertExploit(ctx context.Context, exploit *model.Exploit) error {
	if exploit.Key == "" {
		exploit.Key = util.SanitizeKey("EDB-" + exploit.ExploitID)
	}
	_, err := s.db.Collections["exploit"].CreateDocument(ctx, exploit)
	return err
}

// ListExploitsForCVE returns all exploit rows referencing the given CVE
func (s *ArangoStore) ListExploitsForCVE(ctx context.Context, cveID string) ([]model.Exploit, error) {
	query := `
		FOR e IN exploit
			FILTER e.cve_id == @cve_id
			SORT e.created_at ASC
			RETURN e
	`
	bindVars := map[string]interface{}{"cve_id": cveID}

	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var exploits []model.Exploit
	for cursor.HasMore() {
		var e model.Exploit
		if _, err := cursor.ReadDocument(ctx, &e); err != nil {
			return nil, err
		}
		exploits = append(exploits, e)
	}
	return exploits, nil
}

// Ensure compile-time interface check
var _ Store = (*ArangoStore)(nil)
