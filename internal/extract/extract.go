// Package extract turns a free-text plant request into a structured
// genus/species query using a generative model.
//
// See docs/ARCHITECTURE.md § Extraction.
package extract

import (
	"context"
	"fmt"

	"github.com/pdiddy/powo-agent/pkg/types"
)

// Backend performs a single extraction attempt against the model. The
// Claude implementation lives in prompt.go; tests supply a mock.
type Backend interface {
	ExtractQuery(ctx context.Context, request string) (types.PlantQuery, error)
}

// ExtractionError reports that the model could not produce a
// schema-valid genus/species pair within the retry budget.
type ExtractionError struct {
	// Attempts is the number of attempts made before giving up.
	Attempts int

	// Last is the error from the final attempt.
	Last error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting plant query failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExtractionError) Unwrap() error { return e.Last }

// Extractor wraps a Backend with a bounded retry budget. A backend error
// or a schema-invalid result both consume an attempt.
type Extractor struct {
	backend    Backend
	maxRetries int
}

// New creates an Extractor. When maxRetries is not positive the default
// budget (3 attempts) is used.
func New(backend Backend, maxRetries int) *Extractor {
	if maxRetries <= 0 {
		maxRetries = types.DefaultMaxRetries
	}
	return &Extractor{backend: backend, maxRetries: maxRetries}
}

// Extract resolves a free-text request to a PlantQuery. On exhaustion it
// returns *ExtractionError carrying the last attempt's error.
func (e *Extractor) Extract(ctx context.Context, request string) (types.PlantQuery, error) {
	var last error
	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return types.PlantQuery{}, err
		}

		query, err := e.backend.ExtractQuery(ctx, request)
		if err != nil {
			last = err
			continue
		}
		if err := query.Validate(); err != nil {
			last = err
			continue
		}
		return query, nil
	}
	return types.PlantQuery{}, &ExtractionError{Attempts: e.maxRetries, Last: last}
}
