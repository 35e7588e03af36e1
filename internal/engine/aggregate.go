// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"math"
	"sort"

	"github.com/pdiddy/evidence-engine/internal/score"
	"github.com/pdiddy/evidence-engine/pkg/types"
)

// Aggregate computes the summary counts the rendering layer charts: total,
// mean confidence (rounded to 3 decimals), and distributions over evidence
// type and registrable domain.
func Aggregate(records []types.ResultRecord) types.Aggregates {
	agg := types.Aggregates{
		Total:    len(records),
		ByType:   make(map[types.EvidenceType]int),
		ByDomain: make(map[string]int),
	}
	if len(records) == 0 {
		return agg
	}

	var sum float64
	for _, r := range records {
		sum += r.Score
		agg.ByType[r.Type]++
		if dom := score.RegistrableDomain(r.URL); dom != "" {
			agg.ByDomain[dom]++
		}
	}
	agg.MeanScore = math.Round(sum/float64(len(records))*1000) / 1000
	return agg
}

// DomainCount is one row of the per-domain distribution, ordered for display.
type DomainCount struct {
	Domain string `json:"domain" yaml:"domain"`
	Count  int    `json:"count" yaml:"count"`
}

// DomainsByCount flattens the per-domain counts, most frequent first, ties
// broken alphabetically so output is stable.
func DomainsByCount(agg types.Aggregates) []DomainCount {
	rows := make([]DomainCount, 0, len(agg.ByDomain))
	for dom, n := range agg.ByDomain {
		rows = append(rows, DomainCount{Domain: dom, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Domain < rows[j].Domain
	})
	return rows
}
