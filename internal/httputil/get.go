// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"fmt"
	"net/http"
)

// Get issues a single GET request with the given User-Agent. No retries:
// POWO calls are fail-fast and the caller decides what a non-2xx means.
func Get(ctx context.Context, client *http.Client, url, userAgent string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	if client == nil {
		client = http.DefaultClient
	}
	return client.Do(req)
}

// Is2xx reports whether the status code indicates success.
func Is2xx(status int) bool {
	return status >= 200 && status < 300
}
