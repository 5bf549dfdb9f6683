package config

import (
	"fmt"
	"math"

	"github.com/de-tools/test-atlas/pkg/models/domain"
	"github.com/spf13/viper"
)

// Resolve loads a partial config document from disk and merges it over the
// defaults. The result is total: every optional field carries a concrete
// value. Resolving an already-resolved document is a no-op.
func Resolve(path string) (*domain.ReportConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

// ResolveMap merges an in-memory partial document over the defaults. Used
// by the web API, where the document arrives as a request body.
func ResolveMap(doc map[string]any) (*domain.ReportConfig, error) {
	v := viper.New()
	setDefaults(v)

	if err := v.MergeConfigMap(doc); err != nil {
		return nil, fmt.Errorf("failed to merge config document: %w", err)
	}

	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*domain.ReportConfig, error) {
	var cfg domain.ReportConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse report config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("credentials.username_env", "TEST_ATLAS_USERNAME")
	v.SetDefault("credentials.access_key_env", "TEST_ATLAS_ACCESS_KEY")

	v.SetDefault("endpoints.testops_base_url", "https://api.testops.example.com")
	v.SetDefault("endpoints.devicelab_base_url", "https://api.devicelab.example.com")

	v.SetDefault("inputs.testops_build_ids", []string{})
	v.SetDefault("inputs.devicelab_build_ids", []string{})
	v.SetDefault("inputs.custom_app_ids", []string{})
	v.SetDefault("inputs.discovery.enabled", true)
	v.SetDefault("inputs.discovery.project_ids", []string{})
	v.SetDefault("inputs.discovery.max_builds_per_source", 10)
	v.SetDefault("inputs.discovery.days", 7)

	v.SetDefault("sources.testops.enabled", true)
	v.SetDefault("sources.testops.include_hooks", false)
	v.SetDefault("sources.devicelab.enabled", true)
	v.SetDefault("sources.devicelab.fetch_session_details", true)
	v.SetDefault("sources.devicelab.session_page_size", 25)

	v.SetDefault("output.dir", "./reports")
	v.SetDefault("output.base_name", "test-report")
	v.SetDefault("output.formats", []string{"csv", "xlsx", "markdown", "json"})
	v.SetDefault("output.markdown_max_rows", 0)

	v.SetDefault("filters.project_keywords", []string{})
	v.SetDefault("filters.team_keywords", []string{})
	v.SetDefault("filters.person_keywords", []string{})
	v.SetDefault("filters.case_sensitive", false)
	v.SetDefault("filters.apply_days_to_apps", false)
}

// Validate checks a resolved config and reports every violation together.
func Validate(cfg *domain.ReportConfig) error {
	var violations []string

	if cfg.Sources.TestOps.Enabled &&
		len(cfg.Inputs.TestOpsBuildIDs) == 0 &&
		!cfg.Inputs.Discovery.Enabled {
		violations = append(violations,
			"sources.testops is enabled with no inputs.testops_build_ids and discovery disabled")
	}
	if cfg.Sources.DeviceLab.Enabled &&
		len(cfg.Inputs.DeviceLabBuildIDs) == 0 &&
		!cfg.Inputs.Discovery.Enabled {
		violations = append(violations,
			"sources.devicelab is enabled with no inputs.devicelab_build_ids and discovery disabled")
	}

	if cfg.Sources.DeviceLab.Enabled && cfg.Sources.DeviceLab.SessionPageSize <= 0 {
		violations = append(violations,
			fmt.Sprintf("sources.devicelab.session_page_size must be positive, got %d",
				cfg.Sources.DeviceLab.SessionPageSize))
	}

	violations = append(violations, placeholderViolations("inputs.testops_build_ids", cfg.Inputs.TestOpsBuildIDs)...)
	violations = append(violations, placeholderViolations("inputs.devicelab_build_ids", cfg.Inputs.DeviceLabBuildIDs)...)
	violations = append(violations, placeholderViolations("inputs.custom_app_ids", cfg.Inputs.CustomAppIDs)...)
	violations = append(violations, placeholderViolations("inputs.discovery.project_ids", cfg.Inputs.Discovery.ProjectIDs)...)

	if d := cfg.Filters.Days; d != nil {
		if *d <= 0 || math.IsInf(*d, 0) || math.IsNaN(*d) {
			violations = append(violations,
				fmt.Sprintf("filters.days must be a positive finite number, got %v", *d))
		}
	}

	if len(violations) > 0 {
		return &domain.ConfigurationError{Violations: violations}
	}
	return nil
}

func placeholderViolations(field string, ids []string) []string {
	var out []string
	for _, id := range ids {
		if domain.IsPlaceholderID(id) {
			out = append(out, fmt.Sprintf("%s contains a placeholder ID %q", field, id))
		}
	}
	return out
}
