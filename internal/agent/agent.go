// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent orchestrates one plant-data request: extract a
// genus/species query, search POWO, fetch taxon details, and stream
// progress events and artifacts back to the caller.
//
// See docs/ARCHITECTURE.md § Orchestration.
package agent

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/pdiddy/powo-agent/internal/extract"
	"github.com/pdiddy/powo-agent/internal/search"
	"github.com/pdiddy/powo-agent/internal/taxon"
	"github.com/pdiddy/powo-agent/pkg/types"
)

// Card identifies the agent to hosts and callers.
var Card = struct {
	Name        string
	Description string
	Entrypoint  string
}{
	Name:        "POWO Plant Data Agent",
	Description: "Retrieves detailed plant information from Kew Gardens POWO API using genus and species names.",
	Entrypoint:  "get_plant_info",
}

// Fixed reply and log texts. Hosts and tests key off these strings.
const (
	beginSummary      = "Analyzing plant data request"
	extractFailedText = "Sorry, I couldn't extract plant information from your request."
	searchFailedText  = "Search failed due to server error"
	genericFaultText  = "An error occurred while retrieving plant information"
)

// Agent runs plant-data requests. Stateless between runs: concurrent
// Run calls are independent.
type Agent struct {
	cfg       types.AgentConfig
	extractor *extract.Extractor
	client    *http.Client
}

// New creates an Agent. The backend performs single extraction attempts;
// the agent wraps it with the configured retry budget. A nil client gets
// a default one with the configured timeout.
func New(cfg types.AgentConfig, backend extract.Backend, client *http.Client) *Agent {
	cfg = cfg.WithDefaults()
	if client == nil {
		client = &http.Client{Timeout: cfg.Powo.Timeout}
	}
	return &Agent{
		cfg:       cfg,
		extractor: extract.New(backend, cfg.Extraction.MaxRetries),
		client:    client,
	}
}

// Run executes one request and streams events to rc. It always reaches a
// terminal state: every failure is converted into a direct reply and
// nothing escapes to the caller, panics included.
func (a *Agent) Run(ctx context.Context, request string, rc Responder) {
	defer func() {
		if r := recover(); r != nil {
			rc.Reply(genericFaultText, map[string]any{"error": fmt.Sprint(r)})
		}
	}()

	rc.Begin(beginSummary)

	// Begin → Extracting.
	query, err := a.extractor.Extract(ctx, request)
	if err != nil {
		var extErr *extract.ExtractionError
		if errors.As(err, &extErr) {
			rc.Reply(extractFailedText, nil)
		} else {
			rc.Reply(genericFaultText, map[string]any{"error": err.Error()})
		}
		return
	}

	rc.Log(fmt.Sprintf("Identified: %s %s", query.Genus, query.Species), map[string]any{
		"genus":   query.Genus,
		"species": query.Species,
	})

	// Extracting → Searching.
	searchURL := search.BuildURL(a.cfg.Powo.SearchBaseURL, query, a.cfg.Powo.PerPage)
	rc.Log(fmt.Sprintf("Searching Kew Gardens database by querying: %s %s", query.Genus, query.Species), map[string]any{
		"search_url": searchURL,
	})

	out, err := search.Search(ctx, a.client, searchURL, a.cfg.Powo)
	if err != nil {
		var transportErr *search.TransportError
		if errors.As(err, &transportErr) {
			rc.Reply(searchFailedText, nil)
		} else {
			rc.Reply(genericFaultText, map[string]any{"error": err.Error()})
		}
		return
	}

	if out.Warning != nil {
		rc.Log("Search response failed validation, continuing with best-effort extraction.", map[string]any{
			"validation_error": out.Warning.Err.Error(),
			"raw_response":     out.Warning.RawBody,
		})
	}

	if len(out.TaxonIDs) == 0 {
		rc.Reply(fmt.Sprintf("No plants found matching %s %s", query.Genus, query.Species), nil)
		return
	}

	totalFound := len(out.TaxonIDs)

	rc.Artifact(Artifact{
		Mimetype:    "text/markdown",
		Description: fmt.Sprintf("Search results for %s %s", query.Genus, query.Species),
		URIs:        []string{searchURL},
		Metadata: map[string]any{
			"genus":       query.Genus,
			"species":     query.Species,
			"total_found": totalFound,
			"search_url":  searchURL,
		},
	})

	rc.Log(fmt.Sprintf("Search completed. Found %d matching plants.", totalFound), map[string]any{
		"total_matches": totalFound,
	})

	// Searching → DetailFetching.
	rc.Log(fmt.Sprintf("Retrieving plant details by fetching detailed information for %d plants.", totalFound), nil)

	details, detailURLs, err := taxon.FetchDetails(ctx, a.client, out.TaxonIDs, a.cfg.Powo)
	if err != nil {
		var valErr *taxon.ValidationError
		if errors.As(err, &valErr) {
			rc.Reply("Plant details failed validation", map[string]any{"error": valErr.Error()})
		} else {
			rc.Reply(genericFaultText, map[string]any{"error": err.Error()})
		}
		return
	}

	rc.Log(fmt.Sprintf("Successfully retrieved %d plant details.", len(details)), nil)

	rc.Artifact(Artifact{
		Mimetype:    "text/markdown",
		Description: fmt.Sprintf("Detailed botanical information for %s %s", query.Genus, query.Species),
		URIs:        detailURLs,
		Metadata: map[string]any{
			"genus":             query.Genus,
			"species":           query.Species,
			"total_found":       totalFound,
			"details_retrieved": len(details),
			"search_url":        searchURL,
			"plant_details_url": detailURLs,
		},
	})

	// DetailFetching → Completed.
	rc.Reply(fmt.Sprintf("Found %d total matches for %s %s. The artifact contains the complete botanical information.",
		totalFound, query.Genus, query.Species), nil)
}
