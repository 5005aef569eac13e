// Package cves defines the event contracts emitted during CVE ingestion.
package cves

import (
	"time"

	"github.com/cvehub/cvehub-backend/model"
)

// Event types published to the ingestion topic
const (
	EventTypeCVEIngested       = "cve.ingested"
	EventTypeExploitDiscovered = "exploit.discovered"
)

// CVEIngestedEvent is published after a CVE has been upserted
type CVEIngestedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`
	CVE           model.CVE `json:"cve"`
}

// ExploitDiscoveredEvent is published after a new exploit row is stored
type ExploitDiscoveredEvent struct {
	EventType     string        `json:"event_type"`
	EventID       string        `json:"event_id"`
	EventTime     time.Time     `json:"event_time"`
	SchemaVersion string        `json:"schema_version"`
	Exploit       model.Exploit `json:"exploit"`
}
