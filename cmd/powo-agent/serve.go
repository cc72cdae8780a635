// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/pdiddy/powo-agent/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the agent as an MCP server on stdio",
	Long: `Serve exposes the agent as a Model Context Protocol server over stdio. The
single tool, get_plant_info, takes a free-text plant request; progress events
stream to the client as notifications and the final reply plus artifact
metadata come back as the tool result.

Diagnostics go to stderr so they do not interfere with the stdio transport.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := agentConfig()
		if cfg.Extraction.APIKey == "" {
			return fmt.Errorf("no Anthropic API key: set extraction.api_key or .secrets/anthropic-api-key")
		}

		server.Version = version
		s := server.New(cfg)
		return mcpserver.ServeStdio(s)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
