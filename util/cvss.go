// Package util provides utility functions for the backend.
package util

import (
	"strings"

	gocvss20 "github.com/pandatix/go-cvss/20"
	gocvss31 "github.com/pandatix/go-cvss/31"
)

// CalculateCVSSScore calculates the CVSS base score from a vector string.
// CVSS 3.x vectors carry a "CVSS:" prefix; CVSS 2.0 vectors do not.
func CalculateCVSSScore(vectorStr string) float64 {
	if vectorStr == "" {
		return 0
	}
	if strings.HasPrefix(vectorStr, "CVSS:3.1") || strings.HasPrefix(vectorStr, "CVSS:3.0") {
		if cvss31, err := gocvss31.ParseVector(vectorStr); err == nil {
			return cvss31.BaseScore()
		}
		return 0
	}
	if !strings.HasPrefix(vectorStr, "CVSS:") {
		if cvss20, err := gocvss20.ParseVector(vectorStr); err == nil {
			return cvss20.BaseScore()
		}
	}
	return 0
}

// GetSeverityRating returns the severity rating for a given CVSS score
func GetSeverityRating(score float64) string {
	switch {
	case score == 0:
		return "NONE"
	case score < 4.0:
		return "LOW"
	case score < 7.0:
		return "MEDIUM"
	case score < 9.0:
		return "HIGH"
	default:
		return "CRITICAL"
	}
}
