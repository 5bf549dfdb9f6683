package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/de-tools/test-atlas/pkg/models/domain"
)

const (
	// requestTimeout bounds each individual HTTP call. The pipeline as a
	// whole is never cancelled mid-flight.
	requestTimeout = 30 * time.Second

	// maxErrorBody caps how much of an error response survives into the
	// error message.
	maxErrorBody = 2048
)

// API issues authenticated GET requests against one source and decodes the
// JSON responses. There are no retries: a failure surfaces immediately.
type API struct {
	base    string
	headers http.Header
	http    *http.Client
}

func NewAPI(baseURL string, creds Credentials) *API {
	return &API{
		base:    strings.TrimRight(baseURL, "/"),
		headers: creds.Headers(),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// GetJSON performs one authenticated GET and decodes the body into a
// Payload. Any network failure or non-2xx status yields a
// *domain.TransportError.
func (a *API) GetJSON(ctx context.Context, path string, query url.Values) (Payload, error) {
	u := a.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", u, err)
	}
	req.Header = a.headers.Clone()

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, transportFailure(u, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, httpFailure(u, resp.StatusCode, string(body))
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", u, err)
	}
	return Payload(payload), nil
}

func transportFailure(u string, err error) error {
	return &domain.TransportError{URL: u, Err: err}
}

func httpFailure(u string, status int, body string) error {
	return &domain.TransportError{URL: u, Status: status, Body: body}
}

// IsTransport reports whether err is (or wraps) a transport failure.
// Discovery traversals use this to downgrade a failed fetch to
// end-of-data.
func IsTransport(err error) bool {
	var te *domain.TransportError
	return errors.As(err, &te)
}
