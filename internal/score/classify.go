// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"strings"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

// Ordered classification rules. First match wins, so a document mentioning
// both "guideline" and "randomized" is a Guideline.
var (
	guidelineTerms  = []string{"guideline", "consensus", "recommendation", "practice guideline"}
	systematicTerms = []string{"systematic review", "meta-analysis", "cochrane"}
	trialTerms      = []string{"randomized", "randomised", "rct", "phase i", "phase ii", "phase iii"}
)

// Classify assigns the evidence-type label from the lowercased concatenation
// of title and URL, applying the rule list in order.
func Classify(title, rawURL string) types.EvidenceType {
	text := strings.ToLower(title + " " + rawURL)

	if containsAny(text, guidelineTerms) {
		return types.EvidenceGuideline
	}
	if containsAny(text, systematicTerms) {
		return types.EvidenceSystematicReview
	}
	if hostMatches(rawURL, registryHosts) || containsAny(text, trialTerms) {
		return types.EvidenceTrialRegistry
	}
	return types.EvidenceArticleOther
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
