// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/evidence-engine/internal/engine"
	"github.com/pdiddy/evidence-engine/pkg/types"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Generate a cited natural-language overview for a question",
	Long: `Overview asks the answer API for a generated summary of the evidence under
the same domain policy as search, and prints it with its source citations
(capped at --max-citations).`,
	RunE: runOverview,
}

func init() {
	overviewCmd.Flags().String("query", "", "free-text healthcare question")
	overviewCmd.Flags().StringSlice("boost", nil, "booster terms appended to the query")
	overviewCmd.Flags().String("since", "", "only sources published on or after this date (YYYY[-MM[-DD]])")
	overviewCmd.Flags().String("mode", "clinical", "domain policy: clinical or scholar")
	overviewCmd.Flags().Int("max-citations", 10, "maximum citations to keep")
	overviewCmd.Flags().Bool("json", false, "output the answer as JSON")

	rootCmd.AddCommand(overviewCmd)
}

func runOverview(cmd *cobra.Command, args []string) error {
	mode, _ := cmd.Flags().GetString("mode")
	switch types.Mode(mode) {
	case types.ModeClinical, types.ModeScholar:
	default:
		return fmt.Errorf("unknown mode %q: use clinical or scholar", mode)
	}
	since, _ := cmd.Flags().GetString("since")
	boosters, _ := cmd.Flags().GetStringSlice("boost")
	maxCitations, _ := cmd.Flags().GetInt("max-citations")

	query, _ := cmd.Flags().GetString("query")
	if query == "" {
		query = strings.Join(args, " ")
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	eng := engine.New(client, nil, types.EngineConfig{})

	ans, err := eng.Overview(context.Background(), query, types.SearchConfig{
		Since:        strings.TrimSpace(since),
		Mode:         types.Mode(mode),
		Boosters:     boosters,
		MaxCitations: maxCitations,
	})
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ans)
	}
	engine.FormatOverview(ans, os.Stdout)
	return nil
}
