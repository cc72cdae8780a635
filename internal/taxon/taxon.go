// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package taxon fetches detailed POWO taxon records per identifier.
//
// See docs/ARCHITECTURE.md § Detail Fetch.
package taxon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/powo-agent/internal/httputil"
	"github.com/pdiddy/powo-agent/pkg/types"
)

// ValidationError reports a 2xx detail body that failed schema
// validation. Fatal: the whole run aborts and already collected details
// are discarded. This is deliberately stricter than the search client's
// warning-only policy.
type ValidationError struct {
	// TaxonID is the identifier whose record failed validation.
	TaxonID string

	// Err is the decode or validation error.
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("taxon record %s failed validation: %v", e.TaxonID, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// DetailURL builds the detail endpoint URL for one taxon identifier.
// The identifier is appended verbatim; POWO fqIds are URN strings that
// the API expects unescaped in the path.
func DetailURL(base, taxonID string) string {
	return base + "/" + taxonID + "?fields=distribution"
}

// FetchDetails fetches one detail record per identifier, in the given
// order, one request at a time. A non-2xx response skips that identifier
// and the loop continues; partial success is fine. A record that decodes
// but fails validation returns *ValidationError and discards everything
// collected so far.
//
// The second return value lists the URLs of the records actually
// retrieved, aligned with the details slice.
func FetchDetails(ctx context.Context, client *http.Client, taxonIDs []string, cfg types.PowoConfig) ([]types.TaxonDetail, []string, error) {
	var details []types.TaxonDetail
	var urls []string

	for _, id := range taxonIDs {
		detailURL := DetailURL(cfg.TaxonBaseURL, id)

		resp, err := httputil.Get(ctx, client, detailURL, cfg.UserAgent)
		if err != nil {
			return nil, nil, fmt.Errorf("detail request for %s: %w", id, err)
		}

		if !httputil.Is2xx(resp.StatusCode) {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			continue
		}

		var detail types.TaxonDetail
		err = json.NewDecoder(resp.Body).Decode(&detail)
		resp.Body.Close()
		if err == nil {
			err = detail.Validate()
		}
		if err != nil {
			return nil, nil, &ValidationError{TaxonID: id, Err: err}
		}

		details = append(details, detail)
		urls = append(urls, detailURL)
	}

	return details, urls, nil
}
