package client

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"
)

// Hard ceilings on page counts. The remote pagination contract is not
// trusted: a looping or runaway cursor must not turn into an unbounded
// crawl.
const (
	MaxProjectPages = 20
	MaxListPages    = 50
)

// CursorQuery describes one cursor-paginated traversal: where to GET, the
// static query parameters, and how the cursor travels between response and
// next request.
type CursorQuery struct {
	Path        string
	Query       url.Values
	CursorParam string // query parameter the cursor is injected into
	CursorField string // response field the next cursor is read from
	MaxPages    int
	// Discovery marks a best-effort traversal: a transport failure ends
	// the traversal with whatever was already fetched instead of failing
	// the run.
	Discovery bool
	// Stop, when set, is evaluated after each fetched page; returning
	// true ends the traversal early. Lets callers with a row budget stop
	// paying for pages they will discard.
	Stop func(Payload) bool
}

// FetchAllPages walks a cursor-paginated listing and returns the raw page
// payloads in order. The traversal stops when the response reports no
// further pages, omits the cursor, repeats a cursor already seen, or the
// page ceiling is hit. The cycle guard fires before the repeated page is
// fetched, so no page is ever returned twice.
func (a *API) FetchAllPages(ctx context.Context, q CursorQuery) ([]Payload, error) {
	maxPages := q.MaxPages
	if maxPages <= 0 {
		maxPages = MaxListPages
	}

	seen := make(map[string]struct{})
	cursor := ""
	var pages []Payload

	for len(pages) < maxPages {
		query := url.Values{}
		for k, vs := range q.Query {
			for _, v := range vs {
				query.Add(k, v)
			}
		}
		if cursor != "" {
			query.Set(q.CursorParam, cursor)
		}

		page, err := a.GetJSON(ctx, q.Path, query)
		if err != nil {
			if q.Discovery && IsTransport(err) {
				zerolog.Ctx(ctx).Warn().
					Err(err).
					Str("path", q.Path).
					Msg("discovery fetch failed, stopping traversal")
				return pages, nil
			}
			return nil, err
		}
		pages = append(pages, page)

		if q.Stop != nil && q.Stop(page) {
			break
		}
		if !page.Bool("has_next") {
			break
		}
		next := page.Str(q.CursorField)
		if next == "" {
			break
		}
		if _, dup := seen[next]; dup {
			zerolog.Ctx(ctx).Warn().
				Str("path", q.Path).
				Str("cursor", next).
				Msg("pagination cursor repeated, stopping traversal")
			break
		}
		seen[next] = struct{}{}
		cursor = next
	}

	return pages, nil
}
