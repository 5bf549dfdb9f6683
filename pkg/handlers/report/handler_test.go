package report

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-tools/test-atlas/pkg/models/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler().Healthz(rec, httptest.NewRequest(http.MethodGet, "/api/v1/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp api.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func postReport(t *testing.T, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", bytes.NewReader(body))
	NewHandler().RunReport(rec, req)
	return rec
}

func TestRunReport_MalformedBody(t *testing.T) {
	rec := postReport(t, []byte("{not json"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "invalid JSON body")
}

func TestRunReport_InvalidConfigListsViolations(t *testing.T) {
	doc := map[string]any{
		"inputs": map[string]any{
			"testops_build_ids": []any{"replace-with-build-id"},
			"discovery":         map[string]any{"enabled": false},
		},
	}
	body, err := json.Marshal(doc)
	require.NoError(t, err)

	rec := postReport(t, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// Both the placeholder and the missing devicelab inputs are reported
	// in one response.
	assert.Len(t, resp.Violations, 2)
}

func TestRunReport_MissingCredentials(t *testing.T) {
	doc := map[string]any{
		"credentials": map[string]any{
			"username_env":   "TEST_ATLAS_HANDLER_NO_USER",
			"access_key_env": "TEST_ATLAS_HANDLER_NO_KEY",
		},
	}
	body, err := json.Marshal(doc)
	require.NoError(t, err)

	rec := postReport(t, body)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "TEST_ATLAS_HANDLER_NO_USER")
}

func TestRunReport_EndToEnd(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/runs") {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"runs": []any{map[string]any{
					"display_name": "logs in",
					"type":         "TEST",
					"details":      map[string]any{"status": "passed"},
				}},
				"has_next": false,
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "b1", "name": "nightly"})
	}))
	t.Cleanup(upstream.Close)

	t.Setenv("TEST_ATLAS_HANDLER_USER", "u")
	t.Setenv("TEST_ATLAS_HANDLER_KEY", "k")
	outDir := t.TempDir()

	doc := map[string]any{
		"credentials": map[string]any{
			"username_env":   "TEST_ATLAS_HANDLER_USER",
			"access_key_env": "TEST_ATLAS_HANDLER_KEY",
		},
		"endpoints": map[string]any{"testops_base_url": upstream.URL},
		"inputs":    map[string]any{"testops_build_ids": []any{"b1"}},
		"sources":   map[string]any{"devicelab": map[string]any{"enabled": false}},
		"output": map[string]any{
			"dir":     outDir,
			"formats": []any{"json"},
		},
	}
	body, err := json.Marshal(doc)
	require.NoError(t, err)

	rec := postReport(t, body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp api.RunReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Files)
	assert.Equal(t, outDir, filepath.Dir(resp.Files[0]))

	metrics := map[string]float64{}
	for _, m := range resp.Overview {
		metrics[m.Name] = m.Value
	}
	assert.Equal(t, 1.0, metrics["total_tests"])
	assert.Equal(t, 1.0, metrics["total_unique_builds"])
}
