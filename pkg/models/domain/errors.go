package domain

import (
	"fmt"
	"strings"
)

// ConfigurationError reports every validation violation found in a resolved
// config, not just the first.
type ConfigurationError struct {
	Violations []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration (%d violation(s)): %s",
		len(e.Violations), strings.Join(e.Violations, "; "))
}

// CredentialError means one or both credential environment variables are
// missing or empty. Raised before any network access.
type CredentialError struct {
	Missing []string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("missing credentials: environment variable(s) %s not set or empty",
		strings.Join(e.Missing, ", "))
}

// DiscoveryExhaustedError means an enabled source ended up with zero usable
// build IDs after best-effort discovery.
type DiscoveryExhaustedError struct {
	Source string
}

func (e *DiscoveryExhaustedError) Error() string {
	return fmt.Sprintf("no usable build IDs for the %s source: supply explicit IDs, "+
		"raise inputs.discovery.max_builds_per_source / inputs.discovery.days, "+
		"or disable the source", e.Source)
}

// TransportError wraps a network failure or a non-2xx response. Direct
// fetches treat it as fatal; discovery fetches treat it as end-of-data.
type TransportError struct {
	URL    string
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("request to %s returned HTTP %d: %s", e.URL, e.Status, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
