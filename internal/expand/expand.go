// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package expand rewrites a user query into a richer search expression using
// a static table of healthcare synonyms and abbreviations. The original query
// always survives as a mandatory clause; expansion only appends alternatives.
package expand

import (
	"sort"
	"strings"
)

// Synonyms maps a lowercase trigger token to its expansion phrases. The table
// is process-wide and read-only. Triggers are matched as substrings of the
// lowercased query, so short abbreviations ("mi", "dm") also fire inside
// longer words; that matches the upstream query-helper behavior.
var Synonyms = map[string][]string{
	"mi":         {"myocardial infarction", "heart attack", "stemi", "nstemi"},
	"htn":        {"hypertension", "high blood pressure"},
	"ckd":        {"chronic kidney disease", "renal insufficiency"},
	"dm":         {"diabetes mellitus", "t2d", "t1d", "type 2 diabetes", "type 1 diabetes"},
	"anticoag":   {"anticoagulation", "doac", "apixaban", "rivaroxaban", "warfarin"},
	"guideline":  {"clinical practice guideline", "consensus statement", "recommendation"},
	"systematic": {"systematic review", "meta-analysis"},
	"rct":        {"randomized controlled trial", "randomised controlled trial"},
}

// Compose joins the base query and booster tags into the effective query
// text. Empty parts are dropped.
func Compose(query string, boosters []string) string {
	parts := make([]string, 0, len(boosters)+1)
	if q := strings.TrimSpace(query); q != "" {
		parts = append(parts, q)
	}
	for _, b := range boosters {
		if b = strings.TrimSpace(b); b != "" {
			parts = append(parts, b)
		}
	}
	return strings.Join(parts, " ")
}

// Expand scans the lowercased query for every synonym trigger and, when at
// least one fires, returns "(query) OR (phrase1 OR phrase2 ...)" with the
// collected phrases deduplicated and sorted lexicographically. A query with
// no trigger matches is returned unchanged.
func Expand(query string) string {
	ql := strings.ToLower(query)

	phraseSet := make(map[string]struct{})
	for trigger, phrases := range Synonyms {
		if !strings.Contains(ql, trigger) {
			continue
		}
		for _, p := range phrases {
			phraseSet[p] = struct{}{}
		}
	}
	if len(phraseSet) == 0 {
		return query
	}

	phrases := make([]string, 0, len(phraseSet))
	for p := range phraseSet {
		phrases = append(phrases, p)
	}
	sort.Strings(phrases)

	return "(" + query + ") OR (" + strings.Join(phrases, " OR ") + ")"
}
