// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score computes per-document confidence scores and evidence-type
// labels. Every function is total: missing dates, empty text, and unparsable
// URLs degrade to zero contributions rather than errors.
package score

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/evidence-engine/internal/summarize"
	"github.com/pdiddy/evidence-engine/pkg/types"
)

// Confidence blend weights and recency window. Tunable constants, kept
// together so the blend stays auditable.
const (
	WeightOverlap = 0.6
	WeightRecency = 0.3
	WeightDomain  = 0.1

	// Recency maps RecencyFloorYear -> 0.0 and RecencyCeilYear -> 1.0
	// linearly, clamped.
	RecencyFloorYear = 2015
	RecencyCeilYear  = 2025

	// DefaultUntrustedPrior is the domain prior for sources off the
	// allowlist, and for every source outside clinical mode.
	DefaultUntrustedPrior = 0.6

	// overlapEpsilon keeps the overlap denominator nonzero for empty queries.
	overlapEpsilon = 1e-6
)

var yearRe = regexp.MustCompile(`\d{4}`)

// Confidence returns the blended confidence score for one document, rounded
// to 3 decimal places: 0.6·overlap + 0.3·recency + 0.1·domain prior.
func Confidence(query, text, rawURL, published string, mode types.Mode) float64 {
	s := WeightOverlap*Overlap(query, text) +
		WeightRecency*Recency(published) +
		WeightDomain*DomainPrior(rawURL, mode)
	return math.Round(s*1000) / 1000
}

// Overlap measures query coverage: the fraction of distinct query word
// tokens that also occur in the document text. It is deliberately asymmetric
// (not Jaccard) — a short document quoting every query term scores 1.0.
func Overlap(query, text string) float64 {
	queryTokens := tokenSet(query)
	if len(queryTokens) == 0 {
		return 0
	}
	textTokens := tokenSet(text)

	matched := 0
	for tok := range queryTokens {
		if _, ok := textTokens[tok]; ok {
			matched++
		}
	}
	return float64(matched) / (float64(len(queryTokens)) + overlapEpsilon)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range summarize.Tokenize(s) {
		set[tok] = struct{}{}
	}
	return set
}

// Recency extracts a publication year from the free-form date string and
// maps it linearly onto [0, 1] over the 2015-2025 window, clamped. A missing
// or yearless date contributes 0.0 directly; no fallback year is synthesized.
func Recency(published string) float64 {
	year, ok := extractYear(published)
	if !ok {
		return 0
	}
	rec := float64(year-RecencyFloorYear) / float64(RecencyCeilYear-RecencyFloorYear)
	return math.Max(0, math.Min(1, rec))
}

// extractYear tries structured date layouts first, then falls back to the
// first 4-digit run anywhere in the string.
func extractYear(published string) (int, bool) {
	published = strings.TrimSpace(published)
	if published == "" {
		return 0, false
	}

	layouts := []string{time.RFC3339, "2006-01-02", "2006-01", "2006", "January 2, 2006", "January 2006"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, published); err == nil {
			return t.Year(), true
		}
	}

	if m := yearRe.FindString(published); m != "" {
		year := 0
		for _, c := range m {
			year = year*10 + int(c-'0')
		}
		return year, true
	}
	return 0, false
}

// DomainPrior returns 1.0 for an allowlisted registrable domain when the
// clinical policy is active, and the untrusted prior otherwise.
func DomainPrior(rawURL string, mode types.Mode) float64 {
	if mode == types.ModeClinical && IsTrusted(rawURL) {
		return 1.0
	}
	return DefaultUntrustedPrior
}
