package api

// Metric is one overview entry in a web API response.
type Metric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// RunReportResponse is the body returned by POST /api/v1/reports.
type RunReportResponse struct {
	Overview []Metric `json:"overview"`
	Files    []string `json:"files"`
}

// ErrorResponse carries a human-readable error; Violations is populated
// for configuration errors so callers can fix everything in one pass.
type ErrorResponse struct {
	Error      string   `json:"error"`
	Violations []string `json:"violations,omitempty"`
}

// HealthResponse is the body returned by GET /api/v1/healthz.
type HealthResponse struct {
	Status string `json:"status"`
}
