// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"text/template"

	"github.com/pdiddy/powo-agent/internal/httputil"
	"github.com/pdiddy/powo-agent/pkg/types"
)

// extractionPromptTmpl is the prompt sent to the Claude API for each
// extraction attempt. When the request mentions several plants the model
// is told to pick the first one, not the most specific genus.
var extractionPromptTmpl = template.Must(template.New("extraction").Parse(`You are a botanical expert that extracts plant genus and species information from user messages.

Instructions:
1. Identify the genus and species from the user's message
2. If multiple plants are mentioned, focus on the first/main one

Respond with a JSON object with exactly two string fields:
- genus: the plant genus, e.g. "Mangifera"
- species: the species epithet, e.g. "indica"

Do not include any text outside the JSON object.

Example response:
{"genus": "Mangifera", "species": "indica"}

User message:
{{.Request}}
`))

// claudeAPIURL is the Claude API endpoint. Package-level var for test substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

// ClaudeBackend calls the Claude API to extract a genus/species pair from
// a free-text request.
type ClaudeBackend struct {
	APIKey string
	Model  string
	Client *http.Client

	// MaxRetries bounds the transport-level 429 retries inside one
	// extraction attempt. Zero uses the httputil default.
	MaxRetries int
}

// claudeRequest is the request body for the Claude Messages API.
type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

// claudeMessage is a single message in the Claude API conversation.
type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// claudeResponse is the response body from the Claude Messages API.
type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

// claudeContent is a content block in the Claude API response.
type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ExtractQuery performs one extraction attempt against the Claude API.
func (c *ClaudeBackend) ExtractQuery(ctx context.Context, request string) (types.PlantQuery, error) {
	prompt, err := renderPrompt(request)
	if err != nil {
		return types.PlantQuery{}, fmt.Errorf("rendering prompt: %w", err)
	}

	reqBody := claudeRequest{
		Model:     c.Model,
		MaxTokens: 1024,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return types.PlantQuery{}, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, claudeAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return types.PlantQuery{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, c.MaxRetries)
	if err != nil {
		return types.PlantQuery{}, fmt.Errorf("calling Claude API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return types.PlantQuery{}, fmt.Errorf("Claude API returned %d: %s", resp.StatusCode, string(body))
	}

	var cResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return types.PlantQuery{}, fmt.Errorf("decoding Claude response: %w", err)
	}

	for _, block := range cResp.Content {
		if block.Type != "text" {
			continue
		}
		var query types.PlantQuery
		if err := json.Unmarshal([]byte(block.Text), &query); err != nil {
			return types.PlantQuery{}, fmt.Errorf("parsing extraction JSON: %w", err)
		}
		return query, nil
	}

	return types.PlantQuery{}, fmt.Errorf("no text content in Claude API response")
}

// renderPrompt executes the extraction prompt template with the user request.
func renderPrompt(request string) (string, error) {
	var buf bytes.Buffer
	if err := extractionPromptTmpl.Execute(&buf, struct{ Request string }{Request: request}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
