// Package ingest implements the CVE/exploit ingestion pipeline: it walks
// the NVD feed year by year, normalizes records, cross-references ExploitDB
// ids, and persists results idempotently with bounded concurrency.
package ingest

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Defaults applied to zero-valued Options fields
const (
	DefaultMaxCVEs     = 10000
	DefaultStartYear   = 2020
	DefaultConcurrency = 3
	DefaultPageSize    = 1000

	defaultPageDelay     = 2 * time.Second
	defaultErrorCooldown = 10 * time.Second
)

// Options configures one ingestion run. All fields are optional; zero
// values pick up the defaults above. Years iterate descending from EndYear
// down to StartYear, inclusive.
type Options struct {
	MaxCVEs     int `yaml:"max_cves" json:"max_cves"`
	StartYear   int `yaml:"start_year" json:"start_year"`
	EndYear     int `yaml:"end_year" json:"end_year"`
	Concurrency int `yaml:"concurrency" json:"concurrency"`
	PageSize    int `yaml:"page_size" json:"page_size"`
}

func (o *Options) applyDefaults() {
	if o.MaxCVEs <= 0 {
		o.MaxCVEs = DefaultMaxCVEs
	}
	if o.StartYear <= 0 {
		o.StartYear = DefaultStartYear
	}
	if o.EndYear <= 0 {
		o.EndYear = time.Now().Year()
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.PageSize <= 0 || o.PageSize > DefaultPageSize {
		o.PageSize = DefaultPageSize
	}
}

// LoadOptionsFile reads ingestion defaults from a YAML file. Used at
// startup when INGEST_CONFIG_PATH is set; request-supplied options still
// override per run.
func LoadOptionsFile(path string) (Options, error) {
	var opts Options

	content, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read ingest config: %w", err)
	}

	if err := yaml.Unmarshal(content, &opts); err != nil {
		return opts, fmt.Errorf("parse ingest config: %w", err)
	}

	return opts, nil
}

// Merge overlays non-zero fields of other onto o and returns the result
func (o Options) Merge(other Options) Options {
	merged := o
	if other.MaxCVEs > 0 {
		merged.MaxCVEs = other.MaxCVEs
	}
	if other.StartYear > 0 {
		merged.StartYear = other.StartYear
	}
	if other.EndYear > 0 {
		merged.EndYear = other.EndYear
	}
	if other.Concurrency > 0 {
		merged.Concurrency = other.Concurrency
	}
	if other.PageSize > 0 {
		merged.PageSize = other.PageSize
	}
	return merged
}
