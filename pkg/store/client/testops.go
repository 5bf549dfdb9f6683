package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

const projectsPerPage = 50

// TestOps is the client for the test-reporting source. All listing
// endpoints are cursor-paginated: responses carry a has_next flag and an
// opaque next_page token.
type TestOps struct {
	api *API
}

func NewTestOps(baseURL string, creds Credentials) *TestOps {
	return &TestOps{api: NewAPI(baseURL, creds)}
}

// ListProjects pages through the project listing. Always a discovery
// traversal: project listing only happens when no explicit IDs were given.
func (t *TestOps) ListProjects(ctx context.Context) ([]Payload, error) {
	return t.api.FetchAllPages(ctx, CursorQuery{
		Path:        "/api/v1/projects",
		Query:       url.Values{"per_page": {strconv.Itoa(projectsPerPage)}},
		CursorParam: "next_page",
		CursorField: "next_page",
		MaxPages:    MaxProjectPages,
		Discovery:   true,
	})
}

// ListBuilds pages through one project's builds within a date range. A
// non-nil stop predicate ends the traversal once the caller has seen
// enough builds.
func (t *TestOps) ListBuilds(ctx context.Context, projectID string, from, to time.Time, stop func(Payload) bool) ([]Payload, error) {
	return t.api.FetchAllPages(ctx, CursorQuery{
		Path: fmt.Sprintf("/api/v1/projects/%s/builds", url.PathEscape(projectID)),
		Query: url.Values{
			"from": {strconv.FormatInt(from.Unix(), 10)},
			"to":   {strconv.FormatInt(to.Unix(), 10)},
		},
		CursorParam: "next_page",
		CursorField: "next_page",
		MaxPages:    MaxListPages,
		Discovery:   true,
		Stop:        stop,
	})
}

// BuildDetails fetches one build's detail record. Direct fetch: failures
// are fatal.
func (t *TestOps) BuildDetails(ctx context.Context, buildID string) (Payload, error) {
	return t.api.GetJSON(ctx, "/api/v1/builds/"+url.PathEscape(buildID), nil)
}

// TestRuns pages through one build's hierarchical test-run tree. Direct
// fetch: failures are fatal.
func (t *TestOps) TestRuns(ctx context.Context, buildID string) ([]Payload, error) {
	return t.api.FetchAllPages(ctx, CursorQuery{
		Path:        fmt.Sprintf("/api/v1/builds/%s/runs", url.PathEscape(buildID)),
		CursorParam: "next_page",
		CursorField: "next_page",
		MaxPages:    MaxListPages,
	})
}
