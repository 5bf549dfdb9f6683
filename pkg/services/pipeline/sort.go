package pipeline

import (
	"sort"
	"time"

	"github.com/de-tools/test-atlas/pkg/models/domain"
)

// SortNewestFirst orders rows descending by their best available
// timestamp. Rows with no parseable timestamp sort last; equal keys keep
// their input order.
func SortNewestFirst(rows []*domain.Row, timeFields []string) {
	type entry struct {
		row *domain.Row
		ts  time.Time
		ok  bool
	}

	entries := make([]entry, len(rows))
	for i, row := range rows {
		ts, ok := BestTimestamp(row, timeFields)
		entries[i] = entry{row, ts, ok}
	}

	sort.SliceStable(entries, func(a, b int) bool {
		ea, eb := entries[a], entries[b]
		if ea.ok != eb.ok {
			return ea.ok
		}
		if !ea.ok {
			return false
		}
		return ea.ts.After(eb.ts)
	})

	for i, e := range entries {
		rows[i] = e.row
	}
}
