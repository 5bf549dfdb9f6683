package pipeline

import "github.com/de-tools/test-atlas/pkg/models/domain"

// FieldProfile names, per section, the row fields the keyword clauses
// match against and the candidate timestamp fields, in preference order.
type FieldProfile struct {
	ProjectFields []string
	TeamFields    []string
	PersonFields  []string
	TimeFields    []string
	// Inventory marks app-style rows: the day window only applies to them
	// when filters.apply_days_to_apps is set.
	Inventory bool
}

// Profiles maps each filterable section to its field profile. Overview
// rows are aggregates and are never filtered.
var Profiles = map[string]FieldProfile{
	domain.SectionBuilds: {
		ProjectFields: []string{"project_name", "name"},
		TeamFields:    []string{"tags"},
		PersonFields:  []string{"user_name"},
		TimeFields:    []string{"finished_at", "started_at"},
	},
	domain.SectionTests: {
		ProjectFields: []string{"build_name", "scope", "name"},
		TeamFields:    []string{"tags"},
		PersonFields:  []string{"user_name"},
		TimeFields:    []string{"finished_at", "build_finished_at"},
	},
	domain.SectionSessions: {
		ProjectFields: []string{"project_name", "build_name", "name"},
		TeamFields:    []string{"device", "os"},
		PersonFields:  []string{"user_name"},
		TimeFields:    []string{"finished_at", "started_at", "created_at"},
	},
	domain.SectionApps: {
		ProjectFields: []string{"name", "custom_id"},
		TeamFields:    nil,
		PersonFields:  []string{"uploaded_by"},
		TimeFields:    []string{"uploaded_at"},
		Inventory:     true,
	},
}
