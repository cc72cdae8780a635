// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package taxon

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/powo-agent/pkg/types"
)

func TestDetailURL(t *testing.T) {
	got := DetailURL("https://powo.science.kew.org/api/2/taxon", "urn:lsid:ipni.org:names:527795-1")
	assert.Equal(t, "https://powo.science.kew.org/api/2/taxon/urn:lsid:ipni.org:names:527795-1?fields=distribution", got)
}

// detailBody returns a minimal valid taxon record for the identifier.
func detailBody(id string) string {
	return fmt.Sprintf(`{"fqId": %q, "name": "Allium cepa", "rank": "Species",
		"distribution": {"natives": [{"featureId": 5, "tdwgCode": "IND", "tdwgLevel": 3, "name": "India"}]}}`, id)
}

// taxonServer serves per-identifier responses. The handler map key is the
// identifier; missing keys get a 404.
func taxonServer(t *testing.T, responses map[string]func(w http.ResponseWriter)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/")
		handler, ok := responses[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w)
	}))
}

func ok(body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Write([]byte(body))
	}
}

func status(code int) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.WriteHeader(code)
	}
}

func TestFetchDetails_AllSucceed(t *testing.T) {
	ts := taxonServer(t, map[string]func(http.ResponseWriter){
		"urn:a": ok(detailBody("urn:a")),
		"urn:b": ok(detailBody("urn:b")),
	})
	defer ts.Close()

	cfg := types.PowoConfig{TaxonBaseURL: ts.URL}
	details, urls, err := FetchDetails(context.Background(), ts.Client(), []string{"urn:a", "urn:b"}, cfg)
	require.NoError(t, err)

	require.Len(t, details, 2)
	assert.Equal(t, "urn:a", details[0].FqID)
	assert.Equal(t, "urn:b", details[1].FqID)
	require.NotNil(t, details[0].Distribution)
	assert.Equal(t, "IND", details[0].Distribution.Natives[0].TDWGCode)

	assert.Equal(t, []string{
		ts.URL + "/urn:a?fields=distribution",
		ts.URL + "/urn:b?fields=distribution",
	}, urls)
}

func TestFetchDetails_NonOKIdentifierIsSkipped(t *testing.T) {
	ts := taxonServer(t, map[string]func(http.ResponseWriter){
		"urn:a": ok(detailBody("urn:a")),
		"urn:b": status(http.StatusInternalServerError),
		"urn:c": ok(detailBody("urn:c")),
	})
	defer ts.Close()

	cfg := types.PowoConfig{TaxonBaseURL: ts.URL}
	details, urls, err := FetchDetails(context.Background(), ts.Client(), []string{"urn:a", "urn:b", "urn:c"}, cfg)
	require.NoError(t, err)

	// urn:b fails with a 500 and is silently dropped.
	require.Len(t, details, 2)
	assert.Equal(t, "urn:a", details[0].FqID)
	assert.Equal(t, "urn:c", details[1].FqID)
	assert.Len(t, urls, 2)
}

func TestFetchDetails_MissingIdentifierIsSkipped(t *testing.T) {
	ts := taxonServer(t, map[string]func(http.ResponseWriter){
		"urn:a": ok(detailBody("urn:a")),
	})
	defer ts.Close()

	cfg := types.PowoConfig{TaxonBaseURL: ts.URL}
	details, _, err := FetchDetails(context.Background(), ts.Client(), []string{"urn:missing", "urn:a"}, cfg)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "urn:a", details[0].FqID)
}

func TestFetchDetails_ValidationFailureDiscardsEverything(t *testing.T) {
	ts := taxonServer(t, map[string]func(http.ResponseWriter){
		"urn:a": ok(detailBody("urn:a")),
		"urn:b": ok(`{"name": "record without fqId", "rank": "Species"}`),
		"urn:c": ok(detailBody("urn:c")),
	})
	defer ts.Close()

	cfg := types.PowoConfig{TaxonBaseURL: ts.URL}
	details, urls, err := FetchDetails(context.Background(), ts.Client(), []string{"urn:a", "urn:b", "urn:c"}, cfg)
	require.Error(t, err)

	// Everything collected before the bad record is discarded.
	assert.Nil(t, details)
	assert.Nil(t, urls)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "urn:b", valErr.TaxonID)
	assert.Contains(t, valErr.Error(), "missing fqId")
}

func TestFetchDetails_UndecodableBodyIsValidationError(t *testing.T) {
	ts := taxonServer(t, map[string]func(http.ResponseWriter){
		"urn:a": ok("<html>oops</html>"),
	})
	defer ts.Close()

	cfg := types.PowoConfig{TaxonBaseURL: ts.URL}
	_, _, err := FetchDetails(context.Background(), ts.Client(), []string{"urn:a"}, cfg)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "urn:a", valErr.TaxonID)
}

func TestFetchDetails_EmptyInput(t *testing.T) {
	cfg := types.PowoConfig{TaxonBaseURL: "http://example.invalid"}
	details, urls, err := FetchDetails(context.Background(), http.DefaultClient, nil, cfg)
	require.NoError(t, err)
	assert.Empty(t, details)
	assert.Empty(t, urls)
}
