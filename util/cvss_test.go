package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCVSSScore(t *testing.T) {
	tests := []struct {
		name   string
		vector string
		want   float64
	}{
		{"v3.1 critical", "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H", 9.8},
		{"v2 high", "AV:N/AC:L/Au:N/C:P/I:P/A:P", 7.5},
		{"empty", "", 0},
		{"garbage", "not-a-vector", 0},
		{"unsupported prefix", "CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:H/VI:H/VA:H/SC:N/SI:N/SA:N", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateCVSSScore(tt.vector), 0.01)
		})
	}
}

func TestGetSeverityRating(t *testing.T) {
	assert.Equal(t, "NONE", GetSeverityRating(0))
	assert.Equal(t, "LOW", GetSeverityRating(3.9))
	assert.Equal(t, "MEDIUM", GetSeverityRating(4.0))
	assert.Equal(t, "MEDIUM", GetSeverityRating(6.9))
	assert.Equal(t, "HIGH", GetSeverityRating(7.0))
	assert.Equal(t, "HIGH", GetSeverityRating(8.9))
	assert.Equal(t, "CRITICAL", GetSeverityRating(9.0))
	assert.Equal(t, "CRITICAL", GetSeverityRating(10))
}

func TestSanitizeKey(t *testing.T) {
	assert.Equal(t, "CVE-2023-0001", SanitizeKey(" CVE-2023-0001 "))
	assert.Equal(t, "a-b-c", SanitizeKey("a b/c"))
	assert.Equal(t, "abc", SanitizeKey("[a](b)c"))
}
