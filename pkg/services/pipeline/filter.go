package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/test-atlas/pkg/models/domain"
)

const secondsPerDay = 86400

// Filter applies the keyword and time-window predicates to a row
// collection. The input is not mutated; the result shares row pointers
// with the input (rows are immutable past this stage).
func Filter(rows []*domain.Row, f domain.FilterConfig, p FieldProfile, now time.Time) []*domain.Row {
	project := normalizeKeywords(f.ProjectKeywords)
	team := normalizeKeywords(f.TeamKeywords)
	person := normalizeKeywords(f.PersonKeywords)

	out := make([]*domain.Row, 0, len(rows))
	for _, row := range rows {
		if !matchKeywords(row, p.ProjectFields, project, f.CaseSensitive) {
			continue
		}
		if !matchKeywords(row, p.TeamFields, team, f.CaseSensitive) {
			continue
		}
		if !matchKeywords(row, p.PersonFields, person, f.CaseSensitive) {
			continue
		}
		if !matchWindow(row, p, f, now) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// normalizeKeywords trims entries and drops empty or placeholder-looking
// ones. An empty normalized list disables the clause.
func normalizeKeywords(keywords []string) []string {
	var out []string
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" || domain.IsPlaceholderID(k) {
			continue
		}
		out = append(out, k)
	}
	return out
}

func matchKeywords(row *domain.Row, fields, keywords []string, caseSensitive bool) bool {
	if len(keywords) == 0 {
		return true
	}

	var parts []string
	for _, f := range fields {
		if v, ok := row.Get(f); ok && v != nil {
			parts = append(parts, fmt.Sprintf("%v", v))
		}
	}
	composite := strings.Join(parts, " ")
	if !caseSensitive {
		composite = strings.ToLower(composite)
	}

	for _, k := range keywords {
		if !caseSensitive {
			k = strings.ToLower(k)
		}
		if strings.Contains(composite, k) {
			return true
		}
	}
	return false
}

// matchWindow passes rows inside the day window. Rows with no usable
// timestamp always pass: missing timing data must never silently drop a
// row.
func matchWindow(row *domain.Row, p FieldProfile, f domain.FilterConfig, now time.Time) bool {
	if f.Days == nil {
		return true
	}
	if p.Inventory && !f.ApplyDaysToApps {
		return true
	}

	ts, ok := BestTimestamp(row, p.TimeFields)
	if !ok {
		return true
	}

	cutoff := now.Add(-time.Duration(*f.Days * secondsPerDay * float64(time.Second)))
	return !ts.Before(cutoff)
}
