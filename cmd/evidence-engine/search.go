// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/evidence-engine/internal/engine"
	"github.com/pdiddy/evidence-engine/internal/store"
	"github.com/pdiddy/evidence-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for evidence and score every result",
	Long: `Search queries the semantic search API with a synonym-expanded query and
returns scored, classified, summarized results in the provider's relevance
order. Clinical mode restricts results to the curated healthcare allowlist;
scholar mode searches broadly, excluding only low-quality hosts.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "free-text healthcare question")
	searchCmd.Flags().StringSlice("boost", nil, "booster terms appended to the query (e.g. guideline,rct)")
	searchCmd.Flags().String("since", "", "only results published on or after this date (YYYY[-MM[-DD]])")
	searchCmd.Flags().Int("max-results", 8, "maximum number of results")
	searchCmd.Flags().String("mode", "clinical", "domain policy: clinical or scholar")
	searchCmd.Flags().Int("summary-sentences", 5, "sentences per extractive summary")
	searchCmd.Flags().Bool("fetch-missing-text", true, "fetch and clean pages the provider returned without text")
	searchCmd.Flags().Duration("fetch-timeout", 8*time.Second, "per-page fetch timeout")
	searchCmd.Flags().Bool("images", false, "look up a preview image per result")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("save", false, "save the search to the local session store")

	rootCmd.AddCommand(searchCmd)
}

// searchConfig reads the search flags into a SearchConfig.
func searchConfig(cmd *cobra.Command) (types.SearchConfig, error) {
	mode, _ := cmd.Flags().GetString("mode")
	switch types.Mode(mode) {
	case types.ModeClinical, types.ModeScholar:
	default:
		return types.SearchConfig{}, fmt.Errorf("unknown mode %q: use clinical or scholar", mode)
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")
	since, _ := cmd.Flags().GetString("since")
	boosters, _ := cmd.Flags().GetStringSlice("boost")
	sentences, _ := cmd.Flags().GetInt("summary-sentences")
	fetchMissing, _ := cmd.Flags().GetBool("fetch-missing-text")
	fetchTimeout, _ := cmd.Flags().GetDuration("fetch-timeout")
	images, _ := cmd.Flags().GetBool("images")

	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: userAgent,
		},
		MaxResults:       maxResults,
		Since:            strings.TrimSpace(since),
		Mode:             types.Mode(mode),
		Boosters:         boosters,
		SummarySentences: sentences,
		FetchMissingText: fetchMissing,
		FetchTimeout:     fetchTimeout,
		LookupImages:     images,
	}, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := searchConfig(cmd)
	if err != nil {
		return err
	}

	query, _ := cmd.Flags().GetString("query")
	if query == "" {
		query = strings.Join(args, " ")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	eng := engine.New(client, newFetcher(cfg.FetchTimeout), types.EngineConfig{})

	out, err := eng.Search(context.Background(), query, cfg)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		if err := engine.FormatJSON(out, os.Stdout); err != nil {
			return err
		}
	} else {
		engine.FormatTable(out, os.Stdout)
		engine.FormatAggregates(engine.Aggregate(out.Records), os.Stdout)
	}

	save, _ := cmd.Flags().GetBool("save")
	if !save {
		return nil
	}

	dataDir, _ := cmd.Flags().GetString("data-dir")
	st, err := store.NewStore(types.StoreConfig{DataDir: dataDir})
	if err != nil {
		return err
	}
	defer st.Close()

	agg := engine.Aggregate(out.Records)
	id, err := st.SaveSearch(context.Background(), store.Session{
		Query:     out.Query,
		Expanded:  out.ExpandedQuery,
		Mode:      cfg.Mode,
		Since:     cfg.Since,
		MeanScore: agg.MeanScore,
	}, out.Records)
	if err != nil {
		return fmt.Errorf("saving search: %w", err)
	}
	fmt.Fprintf(os.Stderr, "saved session %d\n", id)
	return nil
}
