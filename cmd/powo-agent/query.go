// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/powo-agent/internal/agent"
	"github.com/pdiddy/powo-agent/internal/extract"
)

var queryCmd = &cobra.Command{
	Use:   "query [request]",
	Short: "Run one plant-data request and print the event stream",
	Long: `Query runs the agent once against a free-text plant request and prints the
resulting event stream: the process summary, progress logs, artifacts, and the
final reply.

With --format text (default) events are rendered one per line; --format yaml
dumps the full structured stream.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format != "text" && format != "yaml" {
			return fmt.Errorf("unknown format %q: use text or yaml", format)
		}

		cfg := agentConfig()
		if cfg.Extraction.APIKey == "" {
			return fmt.Errorf("no Anthropic API key: set extraction.api_key or .secrets/anthropic-api-key")
		}

		backend := &extract.ClaudeBackend{
			APIKey: cfg.Extraction.APIKey,
			Model:  cfg.Extraction.Model,
			Client: &http.Client{Timeout: cfg.Powo.Timeout},
		}
		a := agent.New(cfg, backend, nil)

		request := strings.Join(args, " ")
		rec := &agent.Recorder{}
		a.Run(cmd.Context(), request, rec)

		if format == "yaml" {
			data, err := yaml.Marshal(rec.Events)
			if err != nil {
				return fmt.Errorf("marshaling events: %w", err)
			}
			fmt.Fprint(os.Stdout, string(data))
			return nil
		}

		printEvents(rec.Events)
		return nil
	},
}

// printEvents renders the stream one event per line.
func printEvents(events []agent.Event) {
	for _, e := range events {
		switch e.Kind {
		case agent.EventBegin:
			fmt.Printf("process: %s\n", e.Text)
		case agent.EventLog:
			fmt.Printf("log:     %s\n", e.Text)
		case agent.EventArtifact:
			if e.Artifact != nil {
				fmt.Printf("artifact: %s (%s)\n", e.Artifact.Description, e.Artifact.Mimetype)
				for _, uri := range e.Artifact.URIs {
					fmt.Printf("          %s\n", uri)
				}
			}
		case agent.EventReply:
			fmt.Printf("reply:   %s\n", e.Text)
		}
	}
}

func init() {
	queryCmd.Flags().String("format", "text", "output format: text or yaml")

	rootCmd.AddCommand(queryCmd)
}
