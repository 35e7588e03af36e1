// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

// FormatTable writes results as a human-readable table to w.
func FormatTable(out SearchOutput, w io.Writer) {
	if len(out.Records) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-58s  %-12s  %-17s  %-6s\n",
		"Rank", "Title", "Published", "Type", "Score")
	fmt.Fprintln(w, strings.Repeat("-", 105))

	for i, r := range out.Records {
		title := r.Title
		if len(title) > 58 {
			title = title[:55] + "..."
		}
		published := r.Published
		if len(published) > 12 {
			published = published[:12]
		}
		fmt.Fprintf(w, "%-4d  %-58s  %-12s  %-17s  %.3f\n",
			i+1, title, published, string(r.Type), r.Score)
		fmt.Fprintf(w, "      %s\n", r.URL)
		if r.Summary != "" {
			fmt.Fprintf(w, "      %s\n", truncate(r.Summary, 200))
		}
	}

	fmt.Fprintf(w, "\n%d results", len(out.Records))
	if out.FromCache {
		fmt.Fprint(w, " (cached)")
	}
	fmt.Fprintln(w)
}

// FormatAggregates writes the analytics block: per-type and per-domain
// distributions plus the mean confidence.
func FormatAggregates(agg types.Aggregates, w io.Writer) {
	if agg.Total == 0 {
		return
	}
	fmt.Fprintf(w, "\nmean confidence: %.3f\n", agg.MeanScore)

	fmt.Fprintln(w, "by evidence type:")
	for _, typ := range []types.EvidenceType{
		types.EvidenceGuideline, types.EvidenceSystematicReview,
		types.EvidenceTrialRegistry, types.EvidenceArticleOther,
	} {
		if n := agg.ByType[typ]; n > 0 {
			fmt.Fprintf(w, "  %-18s %d\n", string(typ), n)
		}
	}

	fmt.Fprintln(w, "by domain:")
	for _, row := range DomainsByCount(agg) {
		fmt.Fprintf(w, "  %-30s %d\n", row.Domain, row.Count)
	}
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(out SearchOutput, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Records)
}

// FormatOverview writes the generated answer and its sources to w.
func FormatOverview(ans types.OverviewAnswer, w io.Writer) {
	if ans.Answer == "" {
		fmt.Fprintln(w, "No summary returned.")
	} else {
		fmt.Fprintln(w, ans.Answer)
	}
	if len(ans.Citations) > 0 {
		fmt.Fprintln(w, "\nSources:")
		for _, c := range ans.Citations {
			title := c.Title
			if title == "" {
				title = c.URL
			}
			fmt.Fprintf(w, "  - %s (%s)\n", title, c.URL)
		}
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
