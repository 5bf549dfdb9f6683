package overview

import "github.com/de-tools/test-atlas/pkg/models/domain"

// Build computes the summary metrics for a finished run: distinct build
// count (union across all three row collections), row totals, then one
// metric per distinct test status and per distinct session status, in
// first-seen order.
func Build(builds, tests, sessions []*domain.Row) []*domain.Row {
	uniqueBuilds := make(map[string]struct{})
	collectBuildIDs(uniqueBuilds, builds)
	collectBuildIDs(uniqueBuilds, tests)
	collectBuildIDs(uniqueBuilds, sessions)

	rows := []*domain.Row{
		metric("total_unique_builds", float64(len(uniqueBuilds))),
		metric("total_tests", float64(len(tests))),
		metric("total_sessions", float64(len(sessions))),
	}

	for _, m := range statusTally("test_status_", tests) {
		rows = append(rows, m)
	}
	for _, m := range statusTally("session_status_", sessions) {
		rows = append(rows, m)
	}
	return rows
}

func collectBuildIDs(into map[string]struct{}, rows []*domain.Row) {
	for _, row := range rows {
		if id, ok := row.Get("build_id"); ok {
			if s, isStr := id.(string); isStr && s != "" {
				into[s] = struct{}{}
			}
		}
	}
}

func statusTally(prefix string, rows []*domain.Row) []*domain.Row {
	counts := make(map[string]float64)
	var order []string
	for _, row := range rows {
		status, _ := row.Value("status").(string)
		if status == "" {
			continue
		}
		if _, seen := counts[status]; !seen {
			order = append(order, status)
		}
		counts[status]++
	}

	out := make([]*domain.Row, 0, len(order))
	for _, status := range order {
		out = append(out, metric(prefix+status, counts[status]))
	}
	return out
}

func metric(name string, value float64) *domain.Row {
	return domain.NewRow().Set("metric", name).Set("value", value)
}
