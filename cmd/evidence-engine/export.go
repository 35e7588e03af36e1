// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/evidence-engine/internal/store"
	"github.com/pdiddy/evidence-engine/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a saved search as CSV, JSON, or YAML",
	Long: `Export writes a saved search's result records in an interchange format.
Every format carries exactly the fields title, url, published, type, score,
summary, one row or object per record. Defaults to the most recent session
and stdout.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().Int64("session", 0, "session id to export (default: most recent)")
	exportCmd.Flags().String("format", "csv", "output format: csv, json, or yaml")
	exportCmd.Flags().String("out", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	st, err := store.NewStore(types.StoreConfig{DataDir: dataDir})
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()

	sessionID, _ := cmd.Flags().GetInt64("session")
	if sessionID == 0 {
		sessionID, err = st.LatestSessionID(ctx)
		if err != nil {
			return err
		}
	}

	records, err := st.Results(ctx, sessionID)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "csv":
		return store.ExportCSV(w, records)
	case "json":
		return store.ExportJSON(w, records)
	case "yaml":
		return store.ExportYAML(w, records)
	default:
		return fmt.Errorf("unknown format %q: use csv, json, or yaml", format)
	}
}
