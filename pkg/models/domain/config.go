package domain

import "strings"

// ReportConfig is the fully resolved configuration for a report run. The
// resolver guarantees every field carries a concrete value; code past the
// resolver never checks for "unset".
type ReportConfig struct {
	Credentials CredentialsConfig       `mapstructure:"credentials"`
	Endpoints   EndpointsConfig         `mapstructure:"endpoints"`
	Inputs      InputsConfig            `mapstructure:"inputs"`
	Sources     SourcesConfig           `mapstructure:"sources"`
	Output      OutputConfig            `mapstructure:"output"`
	Filters     FilterConfig            `mapstructure:"filters"`
	Columns     map[string][]ColumnSpec `mapstructure:"columns"`
}

// CredentialsConfig names the environment variables holding the secret
// material. Only the names live in the config document.
type CredentialsConfig struct {
	UsernameEnv  string `mapstructure:"username_env"`
	AccessKeyEnv string `mapstructure:"access_key_env"`
}

type EndpointsConfig struct {
	TestOpsBaseURL   string `mapstructure:"testops_base_url"`
	DeviceLabBaseURL string `mapstructure:"devicelab_base_url"`
}

type InputsConfig struct {
	TestOpsBuildIDs   []string        `mapstructure:"testops_build_ids"`
	DeviceLabBuildIDs []string        `mapstructure:"devicelab_build_ids"`
	CustomAppIDs      []string        `mapstructure:"custom_app_ids"`
	Discovery         DiscoveryConfig `mapstructure:"discovery"`
}

type DiscoveryConfig struct {
	Enabled            bool     `mapstructure:"enabled"`
	ProjectIDs         []string `mapstructure:"project_ids"`
	MaxBuildsPerSource int      `mapstructure:"max_builds_per_source"`
	Days               int      `mapstructure:"days"`
}

type SourcesConfig struct {
	TestOps   TestOpsSourceConfig   `mapstructure:"testops"`
	DeviceLab DeviceLabSourceConfig `mapstructure:"devicelab"`
}

type TestOpsSourceConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	IncludeHooks bool `mapstructure:"include_hooks"`
}

type DeviceLabSourceConfig struct {
	Enabled             bool `mapstructure:"enabled"`
	FetchSessionDetails bool `mapstructure:"fetch_session_details"`
	SessionPageSize     int  `mapstructure:"session_page_size"`
}

type OutputConfig struct {
	Dir             string   `mapstructure:"dir"`
	BaseName        string   `mapstructure:"base_name"`
	Formats         []string `mapstructure:"formats"`
	MarkdownMaxRows int      `mapstructure:"markdown_max_rows"`
}

// FilterConfig drives the filter pipeline. Days is a pointer: nil means no
// time window at all, which is different from any numeric value.
type FilterConfig struct {
	Days            *float64 `mapstructure:"days"`
	ProjectKeywords []string `mapstructure:"project_keywords"`
	TeamKeywords    []string `mapstructure:"team_keywords"`
	PersonKeywords  []string `mapstructure:"person_keywords"`
	CaseSensitive   bool     `mapstructure:"case_sensitive"`
	ApplyDaysToApps bool     `mapstructure:"apply_days_to_apps"`
}

// ColumnSpec selects one output column: a dotted-path lookup key, an
// optional header override and an optional default for absent values.
type ColumnSpec struct {
	Key     string `mapstructure:"key"`
	Header  string `mapstructure:"header"`
	Default string `mapstructure:"default"`
}

// placeholderMarkers flag IDs copied out of a sample config and never
// replaced with real values.
var placeholderMarkers = []string{"replace-with", "optional-", "your-"}

// IsPlaceholderID reports whether an ID string is empty or still carries a
// sample-config marker.
func IsPlaceholderID(id string) bool {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return true
	}
	lower := strings.ToLower(trimmed)
	for _, marker := range placeholderMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
