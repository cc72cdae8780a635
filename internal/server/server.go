// Package server hosts the agent as an MCP server over stdio.
//
// This is the composition root: it builds the agent from configuration,
// registers the get_plant_info tool, and bridges the agent's event
// stream onto MCP notifications. No request logic lives here.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pdiddy/powo-agent/internal/agent"
	"github.com/pdiddy/powo-agent/internal/extract"
	"github.com/pdiddy/powo-agent/pkg/types"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server with the plant-info tool registered.
func New(cfg types.AgentConfig) *server.MCPServer {
	s := server.NewMCPServer(
		"powo-agent",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(agent.Card.Description),
	)

	cfg = cfg.WithDefaults()
	backend := &extract.ClaudeBackend{
		APIKey: cfg.Extraction.APIKey,
		Model:  cfg.Extraction.Model,
		Client: &http.Client{Timeout: cfg.Powo.Timeout},
	}
	tool := NewPlantInfoTool(cfg, backend)
	s.AddTool(tool.Definition(), tool.Handle)

	return s
}

// PlantInfoTool handles the get_plant_info MCP tool: one free-text plant
// request in, an event-annotated botanical answer out.
type PlantInfoTool struct {
	agent *agent.Agent
}

// NewPlantInfoTool builds the tool around an extraction backend. Tests
// supply a mock backend; New wires the Claude one.
func NewPlantInfoTool(cfg types.AgentConfig, backend extract.Backend) *PlantInfoTool {
	return &PlantInfoTool{agent: agent.New(cfg, backend, nil)}
}

// Definition returns the MCP tool definition for registration.
func (t *PlantInfoTool) Definition() mcp.Tool {
	return mcp.NewTool(agent.Card.Entrypoint,
		mcp.WithDescription(agent.Card.Description+
			" Give it a free-text request naming a plant (e.g. \"Information about Allium cepa\") "+
			"and it resolves the genus/species pair, searches the POWO database, and returns "+
			"detailed taxon records with distribution data."),
		mcp.WithString("request",
			mcp.Required(),
			mcp.Description("Free-text plant question. If several plants are mentioned, the first one is used."),
		),
	)
}

// Handle processes one get_plant_info call. Progress events stream to
// the client as notifications while the run is in flight; the direct
// reply and any artifacts become the tool result.
func (t *PlantInfoTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	request := req.GetString("request", "")
	if request == "" {
		return mcp.NewToolResultError("'request' is required"), nil
	}

	rc := &notifyResponder{ctx: ctx, srv: server.ServerFromContext(ctx)}
	t.agent.Run(ctx, request, rc)

	result := &mcp.CallToolResult{}
	result.Content = append(result.Content, mcp.NewTextContent(rc.replyText))

	if len(rc.artifacts) > 0 {
		payload, err := json.MarshalIndent(rc.artifacts, "", "  ")
		if err == nil {
			result.Content = append(result.Content, mcp.NewTextContent(string(payload)))
		}
	}
	return result, nil
}

// notifyResponder forwards agent events to the MCP client as
// notifications/message and keeps the reply and artifacts for the tool
// result. A nil server (no client context) drops notifications, which
// keeps the tool usable in tests.
type notifyResponder struct {
	ctx context.Context
	srv *server.MCPServer

	replyText string
	artifacts []agent.Artifact
}

func (r *notifyResponder) Begin(summary string) {
	r.notify(map[string]any{"event": string(agent.EventBegin), "summary": summary})
}

func (r *notifyResponder) Log(text string, data map[string]any) {
	params := map[string]any{"event": string(agent.EventLog), "text": text}
	if len(data) > 0 {
		params["data"] = data
	}
	r.notify(params)
}

func (r *notifyResponder) Artifact(a agent.Artifact) {
	r.artifacts = append(r.artifacts, a)
	r.notify(map[string]any{
		"event":       string(agent.EventArtifact),
		"description": a.Description,
		"mimetype":    a.Mimetype,
		"uris":        a.URIs,
		"metadata":    a.Metadata,
	})
}

func (r *notifyResponder) Reply(text string, data map[string]any) {
	r.replyText = text
	params := map[string]any{"event": string(agent.EventReply), "text": text}
	if len(data) > 0 {
		params["data"] = data
	}
	r.notify(params)
}

func (r *notifyResponder) notify(data map[string]any) {
	if r.srv == nil {
		return
	}
	// Notification failures are not the agent's problem; the run result
	// still reaches the client through the tool response.
	_ = r.srv.SendNotificationToClient(r.ctx, "notifications/message", map[string]any{
		"level": "info",
		"data":  data,
	})
}
