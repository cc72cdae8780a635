// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the POWO search endpoint and resolves a plant
// query to taxon identifiers.
//
// See docs/ARCHITECTURE.md § Search.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/powo-agent/internal/httputil"
	"github.com/pdiddy/powo-agent/pkg/types"
)

// TransportError reports a non-2xx response from the search endpoint.
// Terminal: the agent reports a server error and does not retry.
type TransportError struct {
	Status int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("search endpoint returned HTTP %d", e.Status)
}

// ValidationWarning reports a search body that failed to decode into the
// expected shape. Non-fatal: the agent logs it and continues with
// best-effort identifier extraction.
type ValidationWarning struct {
	Err     error
	RawBody string
}

func (w *ValidationWarning) Error() string {
	return fmt.Sprintf("search response failed validation: %v", w.Err)
}

func (w *ValidationWarning) Unwrap() error { return w.Err }

// BuildURL builds the POWO search URL for a plant query. Deterministic
// and injective in (genus, species): the composite q value is URL-encoded
// so decoding the parameter reconstructs the original strings. The cursor
// is pinned to "*"; the agent only ever reads the first page.
func BuildURL(base string, query types.PlantQuery, perPage int) string {
	if perPage <= 0 {
		perPage = types.DefaultPerPage
	}
	params := url.Values{
		"perPage": {strconv.Itoa(perPage)},
		"cursor":  {"*"},
		"q":       {fmt.Sprintf("genus:%s,species:%s", query.Genus, query.Species)},
		"f":       {"species_f"},
	}
	return base + "?" + params.Encode()
}

// Output holds the outcome of one search call.
type Output struct {
	// TaxonIDs are the fqIds extracted from the results, in response
	// order, duplicates preserved. Empty means "no match" — a valid
	// outcome, not an error.
	TaxonIDs []string

	// Response is the decoded envelope; nil when decoding failed.
	Response *types.SearchResponse

	// Warning is set when the body failed validation and identifiers
	// were extracted best-effort.
	Warning *ValidationWarning
}

// Search issues one GET against a previously built search URL and
// resolves it to taxon identifiers. Non-2xx is returned as
// *TransportError; a malformed body is not an error (see Output.Warning).
func Search(ctx context.Context, client *http.Client, searchURL string, cfg types.PowoConfig) (Output, error) {
	resp, err := httputil.Get(ctx, client, searchURL, cfg.UserAgent)
	if err != nil {
		return Output{}, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if !httputil.Is2xx(resp.StatusCode) {
		return Output{}, &TransportError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Output{}, fmt.Errorf("reading search response: %w", err)
	}

	var sr types.SearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		// Malformed body: fall back to best-effort extraction and
		// surface the problem as a warning, not a failure.
		return Output{
			TaxonIDs: bestEffortIDs(body),
			Warning:  &ValidationWarning{Err: err, RawBody: string(body)},
		}, nil
	}

	return Output{TaxonIDs: extractIDs(sr), Response: &sr}, nil
}

// extractIDs pulls the fqId of every result that has one, preserving
// response order and duplicates. Results without an fqId are skipped.
func extractIDs(sr types.SearchResponse) []string {
	var ids []string
	for _, r := range sr.Results {
		if r.FqID != "" {
			ids = append(ids, r.FqID)
		}
	}
	return ids
}

// bestEffortIDs walks an untyped decode of the body and collects every
// results[i].fqId string it can find. Any shape surprise just means
// fewer identifiers.
func bestEffortIDs(body []byte) []string {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}
	results, ok := raw["results"].([]any)
	if !ok {
		return nil
	}
	var ids []string
	for _, entry := range results {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := m["fqId"].(string); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
