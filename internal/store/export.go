// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

// exportRow pins the interchange contract: field names and order are
// exactly title, url, published, type, score, summary in every format.
type exportRow struct {
	Title     string  `json:"title" yaml:"title"`
	URL       string  `json:"url" yaml:"url"`
	Published string  `json:"published" yaml:"published"`
	Type      string  `json:"type" yaml:"type"`
	Score     float64 `json:"score" yaml:"score"`
	Summary   string  `json:"summary" yaml:"summary"`
}

var exportHeader = []string{"title", "url", "published", "type", "score", "summary"}

func toRows(records []types.ResultRecord) []exportRow {
	rows := make([]exportRow, len(records))
	for i, r := range records {
		rows[i] = exportRow{
			Title:     r.Title,
			URL:       r.URL,
			Published: r.Published,
			Type:      string(r.Type),
			Score:     r.Score,
			Summary:   r.Summary,
		}
	}
	return rows
}

// ExportCSV writes one row per record with a header line.
func ExportCSV(w io.Writer, records []types.ResultRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range toRows(records) {
		row := []string{
			r.Title, r.URL, r.Published, r.Type,
			strconv.FormatFloat(r.Score, 'f', 3, 64), r.Summary,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportJSON writes the records as an indented JSON array.
func ExportJSON(w io.Writer, records []types.ResultRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toRows(records))
}

// ExportYAML writes the records as a YAML sequence.
func ExportYAML(w io.Writer, records []types.ResultRecord) error {
	data, err := yaml.Marshal(toRows(records))
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}
