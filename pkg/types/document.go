// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the evidence-engine
// pipeline: candidate documents as returned by the upstream search API,
// scored result records, and the generated overview answer.
package types

// CandidateDocument is one search hit from the upstream search API,
// deserialized into explicit fields at the collaborator boundary. The URL is
// the unique key within a result set.
type CandidateDocument struct {
	// URL is the document location and the dedup key within one result set.
	URL string `json:"url" yaml:"url"`

	// Title is the document title; backends fall back to the URL when the
	// provider returns none.
	Title string `json:"title" yaml:"title"`

	// Published is the provider's published-date string, kept verbatim. It
	// may be a bare year, year-month, or a full date, or empty.
	Published string `json:"published,omitempty" yaml:"published,omitempty"`

	// Text is the document full text when the provider pre-fetched it.
	// Empty means the normalizer must fetch and clean the page on demand.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// EvidenceType is the coarse category assigned to a medical document.
type EvidenceType string

const (
	EvidenceGuideline        EvidenceType = "Guideline"
	EvidenceSystematicReview EvidenceType = "Systematic Review"
	EvidenceTrialRegistry    EvidenceType = "Trial/Registry"
	EvidenceArticleOther     EvidenceType = "Article/Other"
)

// ResultRecord is the scored, classified, summarized output for one
// candidate document. Records keep the upstream relevance order; the engine
// never re-sorts them. Field order is the interchange contract for export:
// title, url, published, type, score, summary.
type ResultRecord struct {
	// Title is the document title.
	Title string `json:"title" yaml:"title"`

	// URL is the document location.
	URL string `json:"url" yaml:"url"`

	// Published is the provider's date string, unparsed.
	Published string `json:"published" yaml:"published"`

	// Type is the evidence-type label.
	Type EvidenceType `json:"type" yaml:"type"`

	// Score is the confidence score in [0, 1], rounded to 3 decimals.
	Score float64 `json:"score" yaml:"score"`

	// Summary is the space-joined top-k extractive snippet, possibly empty.
	Summary string `json:"summary" yaml:"summary"`

	// ImageURL is an optional preview image (og:image or favicon), filled
	// only when image lookup is enabled.
	ImageURL string `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// Citation is one (title, URL) source reference from the answer API.
type Citation struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// OverviewAnswer is the generated natural-language answer with its sources.
// The citation sequence is ordered and truncated to the caller's maximum.
type OverviewAnswer struct {
	Answer    string     `json:"answer" yaml:"answer"`
	Citations []Citation `json:"citations" yaml:"citations"`
}

// Aggregates holds the per-search summary counts the rendering layer
// consumes: totals, mean confidence, and distributions by evidence type and
// registrable domain.
type Aggregates struct {
	Total     int                  `json:"total" yaml:"total"`
	MeanScore float64              `json:"mean_score" yaml:"mean_score"`
	ByType    map[EvidenceType]int `json:"by_type" yaml:"by_type"`
	ByDomain  map[string]int       `json:"by_domain" yaml:"by_domain"`
}
