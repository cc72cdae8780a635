// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the powo-agent CLI.
// See docs/ARCHITECTURE.md § Hosting.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/powo-agent/internal/secrets"
	"github.com/pdiddy/powo-agent/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the powo-agent CLI.
var rootCmd = &cobra.Command{
	Use:   "powo-agent",
	Short: "Agent for botanical data from Kew Gardens POWO",
	Long: `powo-agent answers free-text plant questions with structured botanical data.
A generative model extracts the genus/species pair from the request, the POWO
(Plants of the World Online) API resolves it to taxon records, and the agent
streams progress events and result artifacts back to the caller.

Run a one-shot request with "query", or host the agent as an MCP stdio server
with "serve".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./powo-agent.yaml or ~/.config/powo-agent/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("powo-agent")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "powo-agent"))
		}
	}

	viper.SetEnvPrefix("POWO_AGENT")
	viper.AutomaticEnv()

	viper.SetDefault("powo.timeout", 30*time.Second)
	viper.SetDefault("extraction.model", "claude-sonnet-4-5-20250929")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// agentConfig assembles the agent configuration from viper and secrets.
// Flags and environment win over the config file; the Anthropic key falls
// back to .secrets/anthropic-api-key.
func agentConfig() types.AgentConfig {
	cfg := types.AgentConfig{
		Powo: types.PowoConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("powo.timeout"),
				UserAgent: viper.GetString("powo.user_agent"),
			},
			SearchBaseURL: viper.GetString("powo.search_base_url"),
			TaxonBaseURL:  viper.GetString("powo.taxon_base_url"),
			PerPage:       viper.GetInt("powo.per_page"),
		},
		Extraction: types.AIConfig{
			Model:      viper.GetString("extraction.model"),
			APIKey:     viper.GetString("extraction.api_key"),
			MaxRetries: viper.GetInt("extraction.max_retries"),
		},
	}
	if cfg.Extraction.APIKey == "" {
		cfg.Extraction.APIKey = loadedSecrets["anthropic-api-key"]
	}
	return cfg.WithDefaults()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
