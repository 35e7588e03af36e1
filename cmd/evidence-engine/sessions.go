// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/evidence-engine/internal/engine"
	"github.com/pdiddy/evidence-engine/internal/store"
	"github.com/pdiddy/evidence-engine/pkg/types"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage saved searches (list, show)",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved searches, newest first",
	RunE:  runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved search's results",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	return store.NewStore(types.StoreConfig{DataDir: dataDir})
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	sessions, err := st.ListSessions(context.Background())
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No saved searches.")
		return nil
	}

	fmt.Printf("%-5s  %-40s  %-9s  %-20s  %-7s  %-5s\n",
		"ID", "Query", "Mode", "Created", "Results", "Mean")
	fmt.Println(strings.Repeat("-", 95))
	for _, s := range sessions {
		query := s.Query
		if len(query) > 40 {
			query = query[:37] + "..."
		}
		fmt.Printf("%-5d  %-40s  %-9s  %-20s  %-7d  %.3f\n",
			s.ID, query, string(s.Mode), s.CreatedAt.Format("2006-01-02 15:04:05"),
			s.ResultCount, s.MeanScore)
	}
	return nil
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid session id %q", args[0])
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.Results(context.Background(), id)
	if err != nil {
		return err
	}

	engine.FormatTable(engine.SearchOutput{Records: records}, os.Stdout)
	engine.FormatAggregates(engine.Aggregate(records), os.Stdout)
	return nil
}
