// Package nvd implements the client for the NVD 2.0 REST feed and the
// normalization of raw feed records into canonical CVE documents.
package nvd

// FeedResponse is the top-level NVD 2.0 API response
type FeedResponse struct {
	ResultsPerPage  int             `json:"resultsPerPage"`
	StartIndex      int             `json:"startIndex"`
	TotalResults    int             `json:"totalResults"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`
}

// Vulnerability wraps one raw CVE record
type Vulnerability struct {
	CVE RawCVE `json:"cve"`
}

// RawCVE mirrors the NVD 2.0 CVE record schema
type RawCVE struct {
	ID               string          `json:"id"`
	SourceIdentifier string          `json:"sourceIdentifier"`
	Published        string          `json:"published"`
	LastModified     string          `json:"lastModified"`
	VulnStatus       string          `json:"vulnStatus"`
	Descriptions     []Description   `json:"descriptions"`
	Metrics          Metrics         `json:"metrics"`
	Configurations   []Configuration `json:"configurations"`
	References       []Reference     `json:"references"`
}

// Description is one language-tagged description entry
type Description struct {
	Lang  string `json:"lang"`
	Value string `json:"value"`
}

// Metrics holds the CVSS metric blocks across versions
type Metrics struct {
	CvssMetricV31 []CvssMetricV3 `json:"cvssMetricV31"`
	CvssMetricV30 []CvssMetricV3 `json:"cvssMetricV30"`
	CvssMetricV2  []CvssMetricV2 `json:"cvssMetricV2"`
}

// CvssMetricV3 is a CVSS 3.x metric block (baseSeverity inside cvssData)
type CvssMetricV3 struct {
	Source   string `json:"source"`
	Type     string `json:"type"`
	CvssData struct {
		Version      string  `json:"version"`
		VectorString string  `json:"vectorString"`
		BaseScore    float64 `json:"baseScore"`
		BaseSeverity string  `json:"baseSeverity"`
	} `json:"cvssData"`
}

// CvssMetricV2 is a CVSS 2.0 metric block (baseSeverity at metric level)
type CvssMetricV2 struct {
	Source   string `json:"source"`
	Type     string `json:"type"`
	CvssData struct {
		Version      string  `json:"version"`
		VectorString string  `json:"vectorString"`
		BaseScore    float64 `json:"baseScore"`
	} `json:"cvssData"`
	BaseSeverity string `json:"baseSeverity"`
}

// Configuration holds the CPE applicability nodes
type Configuration struct {
	Nodes []ConfigNode `json:"nodes"`
}

// ConfigNode is one boolean operator node of CPE match criteria
type ConfigNode struct {
	Operator string     `json:"operator"`
	CpeMatch []CpeMatch `json:"cpeMatch"`
}

// CpeMatch is a single CPE match criteria entry
type CpeMatch struct {
	Vulnerable      bool   `json:"vulnerable"`
	Criteria        string `json:"criteria"`
	MatchCriteriaID string `json:"matchCriteriaId"`
}

// Reference is one external reference URL on a CVE record
type Reference struct {
	URL    string   `json:"url"`
	Source string   `json:"source"`
	Tags   []string `json:"tags"`
}
