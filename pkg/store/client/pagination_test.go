package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/de-tools/test-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCreds() Credentials {
	return Credentials{Username: "u", AccessKey: "k"}
}

func pageResponse(ids []string, hasNext bool, next string) map[string]any {
	items := make([]any, 0, len(ids))
	for _, id := range ids {
		items = append(items, map[string]any{"id": id})
	}
	return map[string]any{"builds": items, "has_next": hasNext, "next_page": next}
}

func TestFetchAllPages_SinglePageStopsAfterOneRequest(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_ = json.NewEncoder(w).Encode(pageResponse([]string{"b1"}, false, ""))
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, testCreds())
	pages, err := api.FetchAllPages(context.Background(), CursorQuery{
		Path:        "/builds",
		CursorParam: "next_page",
		CursorField: "next_page",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, requests)
	assert.Len(t, pages, 1)
}

func TestFetchAllPages_CursorCycleTerminates(t *testing.T) {
	// Cursor chain: "" -> A -> B -> A. The repeat is detected before the
	// page behind A is fetched again.
	responses := map[string]map[string]any{
		"":  pageResponse([]string{"b1"}, true, "A"),
		"A": pageResponse([]string{"b2"}, true, "B"),
		"B": pageResponse([]string{"b3"}, true, "A"),
	}
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_ = json.NewEncoder(w).Encode(responses[r.URL.Query().Get("next_page")])
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, testCreds())
	pages, err := api.FetchAllPages(context.Background(), CursorQuery{
		Path:        "/builds",
		CursorParam: "next_page",
		CursorField: "next_page",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, requests)
	require.Len(t, pages, 3)
	assert.Equal(t, "b1", pages[0].Slice("builds")[0].Str("id"))
	assert.Equal(t, "b3", pages[2].Slice("builds")[0].Str("id"))
}

func TestFetchAllPages_CeilingBoundsRunawayPagination(t *testing.T) {
	// The server always reports another page with a fresh cursor.
	count := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count++
		_ = json.NewEncoder(w).Encode(pageResponse([]string{"x"}, true, r.URL.Query().Get("next_page")+"n"))
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, testCreds())
	pages, err := api.FetchAllPages(context.Background(), CursorQuery{
		Path:        "/builds",
		CursorParam: "next_page",
		CursorField: "next_page",
		MaxPages:    5,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, count)
	assert.Len(t, pages, 5)
}

func TestFetchAllPages_StopPredicateEndsTraversal(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_ = json.NewEncoder(w).Encode(pageResponse([]string{"b1", "b2"}, true, r.URL.Query().Get("next_page")+"n"))
	}))
	defer srv.Close()

	total := 0
	api := NewAPI(srv.URL, testCreds())
	pages, err := api.FetchAllPages(context.Background(), CursorQuery{
		Path:        "/builds",
		CursorParam: "next_page",
		CursorField: "next_page",
		Stop: func(page Payload) bool {
			total += len(page.Slice("builds"))
			return total >= 3
		},
	})
	require.NoError(t, err)

	// The second page satisfies the predicate; no third request is made
	// even though the server still reports more pages.
	assert.Equal(t, 2, requests)
	assert.Len(t, pages, 2)
}

func TestFetchAllPages_DirectFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, testCreds())
	_, err := api.FetchAllPages(context.Background(), CursorQuery{
		Path:        "/builds",
		CursorParam: "next_page",
		CursorField: "next_page",
	})
	require.Error(t, err)

	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusBadGateway, transportErr.Status)
	assert.Contains(t, transportErr.Body, "upstream exploded")
}

func TestFetchAllPages_DiscoveryFailureEndsTraversal(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			_ = json.NewEncoder(w).Encode(pageResponse([]string{"b1"}, true, "A"))
			return
		}
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, testCreds())
	pages, err := api.FetchAllPages(context.Background(), CursorQuery{
		Path:        "/builds",
		CursorParam: "next_page",
		CursorField: "next_page",
		Discovery:   true,
	})

	// Best-effort: the first page survives, the failure does not.
	require.NoError(t, err)
	assert.Len(t, pages, 1)
	assert.Equal(t, 2, requests)
}

func TestGetJSON_SendsAuthHeaders(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, testCreds())
	_, err := api.GetJSON(context.Background(), "/ping", nil)
	require.NoError(t, err)

	assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("u:k")), gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}
