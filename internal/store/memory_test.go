package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvehub/cvehub-backend/model"
)

func canonicalCVE(id string) *model.CVE {
	cve := model.NewCVE(id)
	cve.Title = id + " - something..."
	cve.Description = "something"
	cve.Severity = model.SeverityHigh
	return cve
}

func TestUpsertCVEIdempotent(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	first, err := st.UpsertCVE(ctx, canonicalCVE("CVE-2023-0001"))
	require.NoError(t, err)
	require.NotEmpty(t, first.Key)

	second, err := st.UpsertCVE(ctx, canonicalCVE("CVE-2023-0001"))
	require.NoError(t, err)

	// Surrogate key is stable across upserts, no duplicate rows
	assert.Equal(t, first.Key, second.Key)
	cves, err := st.ListCVEs(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, cves, 1)
}

func TestUpsertCVEPreservesLinkAndKEVFlag(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	_, err := st.UpsertCVE(ctx, canonicalCVE("CVE-2023-0002"))
	require.NoError(t, err)

	require.NoError(t, st.SetPrimaryExploitID(ctx, "CVE-2023-0002", "51234"))
	require.NoError(t, st.MarkActivelyExploited(ctx, "CVE-2023-0002"))

	updated := canonicalCVE("CVE-2023-0002")
	updated.Description = "updated description"
	stored, err := st.UpsertCVE(ctx, updated)
	require.NoError(t, err)

	assert.Equal(t, "updated description", stored.Description)
	require.NotNil(t, stored.ExploitID)
	assert.Equal(t, "51234", *stored.ExploitID)
	assert.True(t, stored.ActivelyExploited)
}

func TestSetPrimaryExploitIDFirstWriteWins(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	_, err := st.UpsertCVE(ctx, canonicalCVE("CVE-2023-0003"))
	require.NoError(t, err)

	require.NoError(t, st.SetPrimaryExploitID(ctx, "CVE-2023-0003", "11111"))
	require.NoError(t, st.SetPrimaryExploitID(ctx, "CVE-2023-0003", "22222"))

	cve, err := st.GetCVE(ctx, "CVE-2023-0003")
	require.NoError(t, err)
	require.NotNil(t, cve.ExploitID)
	assert.Equal(t, "11111", *cve.ExploitID)
}

func TestExploitExistence(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	exists, err := st.ExploitExists(ctx, "51234")
	require.NoError(t, err)
	assert.False(t, exists)

	exploit := model.NewExploit("51234", "CVE-2023-0004")
	exploit.Verified = true
	require.NoError(t, st.InsertExploit(ctx, exploit))

	exists, err = st.ExploitExists(ctx, "51234")
	require.NoError(t, err)
	assert.True(t, exists)

	exploits, err := st.ListExploitsForCVE(ctx, "CVE-2023-0004")
	require.NoError(t, err)
	require.Len(t, exploits, 1)
	assert.True(t, exploits[0].Verified)
}

func TestGetCVEAbsent(t *testing.T) {
	st := NewMemoryStore()

	cve, err := st.GetCVE(context.Background(), "CVE-1999-0001")
	require.NoError(t, err)
	assert.Nil(t, cve)
}

func TestListCVEsSeverityFilter(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	critical := canonicalCVE("CVE-2023-0005")
	critical.Severity = model.SeverityCritical
	_, err := st.UpsertCVE(ctx, critical)
	require.NoError(t, err)

	_, err = st.UpsertCVE(ctx, canonicalCVE("CVE-2023-0006"))
	require.NoError(t, err)

	cves, err := st.ListCVEs(ctx, model.SeverityCritical, 10)
	require.NoError(t, err)
	require.Len(t, cves, 1)
	assert.Equal(t, "CVE-2023-0005", cves[0].CveID)
}
