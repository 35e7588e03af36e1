// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Mode selects which domain policy applies to a search call.
type Mode string

const (
	// ModeClinical restricts results to the curated healthcare allowlist and
	// grants trusted sources the full domain prior.
	ModeClinical Mode = "clinical"

	// ModeScholar searches broadly, excluding only the low-quality denylist.
	ModeScholar Mode = "scholar"
)

// HTTPConfig holds shared HTTP settings for components that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "evidence-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for one evidence search call.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the number of documents requested upstream (default 8).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Since filters results to documents published on or after this date,
	// accepted as YYYY, YYYY-MM, or YYYY-MM-DD. Empty disables the filter.
	Since string `json:"since,omitempty" yaml:"since,omitempty"`

	// Mode selects the clinical or scholar domain policy.
	Mode Mode `json:"mode" yaml:"mode"`

	// Boosters are user-chosen tags (e.g. "guideline", "rct") appended to
	// the query text and fed to synonym expansion.
	Boosters []string `json:"boosters,omitempty" yaml:"boosters,omitempty"`

	// SummarySentences is the top-k snippet size (default 5).
	SummarySentences int `json:"summary_sentences" yaml:"summary_sentences"`

	// MaxCitations caps the overview citation list (default 10).
	MaxCitations int `json:"max_citations" yaml:"max_citations"`

	// FetchMissingText enables the on-demand fetch+clean pass for documents
	// the provider returned without text.
	FetchMissingText bool `json:"fetch_missing_text" yaml:"fetch_missing_text"`

	// FetchTimeout bounds each on-demand document fetch (default 8s). A
	// timed-out fetch degrades to empty text; it is never retried.
	FetchTimeout time.Duration `json:"fetch_timeout" yaml:"fetch_timeout"`

	// LookupImages enables og:image/favicon preview lookup per result.
	LookupImages bool `json:"lookup_images" yaml:"lookup_images"`
}

// EngineConfig holds settings for the engine's calling layer.
type EngineConfig struct {
	// Workers is the per-document fan-out width (default 4).
	Workers int `json:"workers" yaml:"workers"`

	// CacheSize is the maximum number of cached search responses (default 64).
	CacheSize int `json:"cache_size" yaml:"cache_size"`

	// CacheTTL expires cached responses (default 15m). Zero disables expiry.
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`
}

// StoreConfig holds settings for the session store.
type StoreConfig struct {
	// DataDir is the directory holding the SQLite database and exports
	// (default "sessions").
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum rows returned by store queries
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
