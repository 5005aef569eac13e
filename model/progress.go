package model

import "time"

// Ingestion run states
const (
	StatusIdle      = "idle"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusError     = "error"
)

// IngestProgress is the point-in-time snapshot of an ingestion run. It is
// in-memory only and reset at the start of each run.
type IngestProgress struct {
	TotalCVEs        int        `json:"total_cves"`
	ProcessedCVEs    int        `json:"processed_cves"`
	CVEsWithExploits int        `json:"cves_with_exploits"`
	TotalExploits    int        `json:"total_exploits"`
	Errors           []string   `json:"errors"`
	Status           string     `json:"status"`
	StartedAt        *time.Time `json:"started_at"`
	FinishedAt       *time.Time `json:"finished_at"`
}
