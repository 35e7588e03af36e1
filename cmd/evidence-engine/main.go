// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the evidence-engine CLI: healthcare
// evidence search over an external semantic search/answer API, with
// per-document confidence scoring, evidence-type classification, and
// extractive summaries.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/evidence-engine/internal/exa"
	"github.com/pdiddy/evidence-engine/internal/normalize"
	"github.com/pdiddy/evidence-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// userAgent identifies the CLI to the upstream API and fetched hosts.
const userAgent = "evidence-engine/0.1"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the evidence-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "evidence-engine",
	Short: "Healthcare evidence search with scoring and summaries",
	Long: `evidence-engine searches an external semantic search API for healthcare
evidence, then scores, classifies, and summarizes every result: a confidence
score blending lexical overlap, recency, and domain trust; an evidence-type
label (Guideline, Systematic Review, Trial/Registry, Article/Other); and an
extractive snippet of the most query-relevant sentences.

Searches can be saved locally and exported as CSV, JSON, or YAML.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./evidence-engine.yaml or ~/.config/evidence-engine/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "sessions", "directory for the local session database")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("evidence-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "evidence-engine"))
		}
	}

	viper.SetEnvPrefix("EVIDENCE_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// apiKey resolves the upstream API credential. A missing key is fatal for
// every command that talks to the API: the process reports and halts rather
// than running with no search capability.
func apiKey() (string, error) {
	if k := viper.GetString("exa_api_key"); k != "" {
		return k, nil
	}
	if k := loadedSecrets["exa-api-key"]; k != "" {
		return k, nil
	}
	return "", fmt.Errorf("missing Exa API key: set EVIDENCE_ENGINE_EXA_API_KEY or .secrets/exa-api-key")
}

// newClient builds the upstream API client from the resolved credential.
func newClient() (*exa.Client, error) {
	key, err := apiKey()
	if err != nil {
		return nil, err
	}
	return &exa.Client{
		HTTP:      &http.Client{Timeout: 30 * time.Second},
		APIKey:    key,
		UserAgent: userAgent,
	}, nil
}

// newFetcher builds the on-demand page fetcher with its per-fetch timeout.
func newFetcher(timeout time.Duration) *normalize.Fetcher {
	return &normalize.Fetcher{
		Client:    &http.Client{},
		UserAgent: userAgent,
		Timeout:   timeout,
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
