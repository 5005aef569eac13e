package model

import "time"

// Exploit detail sources. A live detail came back from the exploit lookup
// collaborator; a placeholder was synthesized when the lookup had nothing.
const (
	ExploitSourceLive        = "live"
	ExploitSourcePlaceholder = "placeholder"
)

// Exploit represents one ExploitDB entry tied to a CVE, stored in the
// exploit collection. ExploitID is the EDB id and is unique in the store.
type Exploit struct {
	Key           string    `json:"_key,omitempty"`
	ExploitID     string    `json:"exploit_id"` // EDB id, unique
	CveID         string    `json:"cve_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Type          string    `json:"type"`
	Platform      string    `json:"platform"`
	Verified      bool      `json:"verified"`
	DatePublished string    `json:"date_published"`
	Author        string    `json:"author"`
	SourceURL     string    `json:"source_url"`
	Code          *string   `json:"code"`   // lazily populated by an external process
	Source        string    `json:"source"` // "live" or "placeholder"
	ObjType       string    `json:"objtype"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewExploit creates an Exploit document with defaults applied
func NewExploit(exploitID, cveID string) *Exploit {
	return &Exploit{
		ExploitID: exploitID,
		CveID:     cveID,
		ObjType:   "Exploit",
		CreatedAt: time.Now().UTC(),
	}
}
