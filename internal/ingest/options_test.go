package ingest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	var opts Options
	opts.applyDefaults()

	assert.Equal(t, DefaultMaxCVEs, opts.MaxCVEs)
	assert.Equal(t, DefaultStartYear, opts.StartYear)
	assert.Equal(t, time.Now().Year(), opts.EndYear)
	assert.Equal(t, DefaultConcurrency, opts.Concurrency)
	assert.Equal(t, DefaultPageSize, opts.PageSize)
}

func TestApplyDefaultsCapsPageSize(t *testing.T) {
	opts := Options{PageSize: 5000}
	opts.applyDefaults()
	assert.Equal(t, DefaultPageSize, opts.PageSize)
}

func TestMerge(t *testing.T) {
	base := Options{MaxCVEs: 500, StartYear: 2018, Concurrency: 5}
	merged := base.Merge(Options{StartYear: 2022, EndYear: 2023})

	assert.Equal(t, 500, merged.MaxCVEs)
	assert.Equal(t, 2022, merged.StartYear)
	assert.Equal(t, 2023, merged.EndYear)
	assert.Equal(t, 5, merged.Concurrency)
}

func TestLoadOptionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ingest.yaml")
	content := "max_cves: 200\nstart_year: 2019\nconcurrency: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	opts, err := LoadOptionsFile(path)
	require.NoError(t, err)

	assert.Equal(t, 200, opts.MaxCVEs)
	assert.Equal(t, 2019, opts.StartYear)
	assert.Equal(t, 4, opts.Concurrency)
	assert.Zero(t, opts.EndYear)
}

func TestLoadOptionsFileMissing(t *testing.T) {
	_, err := LoadOptionsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
