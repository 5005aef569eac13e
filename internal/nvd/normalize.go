package nvd

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cvehub/cvehub-backend/model"
	"github.com/cvehub/cvehub-backend/util"
)

// noDescription is the sentinel used when a record has no english description
const noDescription = "No description available"

var exploitDBRegex = regexp.MustCompile(`exploit-db\.com/exploits/(\d+)`)

// ExploitRef is an ExploitDB reference extracted from a CVE record's
// reference URL list
type ExploitRef struct {
	EdbID string
	URL   string
}

// Normalize converts one raw NVD record into a canonical CVE document.
// It never fails; absent fields degrade to nil or sentinel values.
func Normalize(raw *RawCVE) *model.CVE {
	cve := model.NewCVE(raw.ID)

	cve.Description = englishDescription(raw.Descriptions)

	// Synthesized convenience title: the NVD feed carries no title field.
	// Known approximation, kept as-is; consumers rely on the id prefix.
	cve.Title = fmt.Sprintf("%s - %s...", raw.ID, truncate(cve.Description, 100))

	score, severity, ok := baseMetric(&raw.Metrics)
	if ok {
		s := strconv.FormatFloat(score, 'f', -1, 64)
		cve.CvssScore = &s
		cve.Severity = severity
	}

	if vendor := extractVendor(raw.Configurations); vendor != "" {
		cve.Vendor = &vendor
	}

	if ok {
		cve.Tags = append(cve.Tags, strings.ToLower(cve.Severity))
	}
	if cve.Vendor != nil {
		cve.Tags = append(cve.Tags, strings.ToLower(*cve.Vendor))
	}

	if raw.Published != "" {
		published := raw.Published
		cve.PublishedDate = &published
	}
	if raw.LastModified != "" {
		modified := raw.LastModified
		cve.UpdatedDate = &modified
	}

	return cve
}

// ExtractExploitRefs scans the record's reference URLs for ExploitDB links.
// Duplicate EDB ids across reference entries are not deduplicated here; the
// store's existence check owns that invariant.
func ExtractExploitRefs(raw *RawCVE) []ExploitRef {
	var refs []ExploitRef
	for _, ref := range raw.References {
		if m := exploitDBRegex.FindStringSubmatch(ref.URL); m != nil {
			refs = append(refs, ExploitRef{EdbID: m[1], URL: ref.URL})
		}
	}
	return refs
}

func englishDescription(descriptions []Description) string {
	for _, desc := range descriptions {
		if desc.Lang == "en" {
			return desc.Value
		}
	}
	return noDescription
}

// baseMetric probes the metric blocks in strict precedence order:
// CVSS v3.1, then v3.0, then v2. The bool reports whether any block was
// found at all.
func baseMetric(metrics *Metrics) (float64, string, bool) {
	if len(metrics.CvssMetricV31) > 0 {
		return metricV3(metrics.CvssMetricV31[0])
	}
	if len(metrics.CvssMetricV30) > 0 {
		return metricV3(metrics.CvssMetricV30[0])
	}
	if len(metrics.CvssMetricV2) > 0 {
		m := metrics.CvssMetricV2[0]
		score := m.CvssData.BaseScore
		if score == 0 && m.CvssData.VectorString != "" {
			score = util.CalculateCVSSScore(m.CvssData.VectorString)
		}
		severity := m.BaseSeverity
		if severity == "" {
			severity = severityFromScore(score)
		}
		return score, severity, true
	}
	return 0, model.SeverityUnknown, false
}

// severityFromScore maps a score to the severity enum. A zero score carries
// no usable signal, so it stays UNKNOWN rather than the CVSS NONE band.
func severityFromScore(score float64) string {
	if score == 0 {
		return model.SeverityUnknown
	}
	return util.GetSeverityRating(score)
}

func metricV3(m CvssMetricV3) (float64, string, bool) {
	score := m.CvssData.BaseScore
	if score == 0 && m.CvssData.VectorString != "" {
		score = util.CalculateCVSSScore(m.CvssData.VectorString)
	}
	severity := m.CvssData.BaseSeverity
	if severity == "" {
		severity = severityFromScore(score)
	}
	return score, severity, true
}

// extractVendor pulls the vendor from the 4th colon-delimited segment of
// the first CPE criteria string, e.g. "cpe:2.3:a:apache:httpd:..." yields
// "apache". Known approximation for malformed CPE strings, kept as-is.
func extractVendor(configurations []Configuration) string {
	for _, config := range configurations {
		for _, node := range config.Nodes {
			for _, match := range node.CpeMatch {
				parts := strings.Split(match.Criteria, ":")
				if len(parts) > 3 {
					return parts[3]
				}
				return ""
			}
		}
	}
	return ""
}

// truncate cuts on rune boundaries so multi-byte descriptions never yield
// an invalid-UTF-8 title
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
