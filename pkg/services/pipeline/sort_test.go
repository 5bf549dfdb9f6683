package pipeline

import (
	"testing"
	"time"

	"github.com/de-tools/test-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortNewestFirst(t *testing.T) {
	older := domain.NewRow().Set("name", "older").Set("finished_at", "2026-08-01T00:00:00Z")
	newer := domain.NewRow().Set("name", "newer").Set("finished_at", "2026-08-20T00:00:00Z")
	timeless := domain.NewRow().Set("name", "timeless").Set("finished_at", "")

	rows := []*domain.Row{older, timeless, newer}
	SortNewestFirst(rows, []string{"finished_at", "started_at"})

	require.Len(t, rows, 3)
	assert.Equal(t, "newer", rows[0].Value("name"))
	assert.Equal(t, "older", rows[1].Value("name"))
	assert.Equal(t, "timeless", rows[2].Value("name"))
}

func TestSortNewestFirst_UsesMaxAcrossCandidates(t *testing.T) {
	// started_at is newer than finished_at here; the max wins.
	early := domain.NewRow().Set("name", "early").
		Set("finished_at", "2026-08-10T00:00:00Z").
		Set("started_at", "2026-08-01T00:00:00Z")
	late := domain.NewRow().Set("name", "late").
		Set("finished_at", "2026-08-05T00:00:00Z").
		Set("started_at", "2026-08-15T00:00:00Z")

	rows := []*domain.Row{early, late}
	SortNewestFirst(rows, []string{"finished_at", "started_at"})

	assert.Equal(t, "late", rows[0].Value("name"))
}

func TestSortNewestFirst_StableForEqualKeys(t *testing.T) {
	a := domain.NewRow().Set("name", "a").Set("finished_at", "2026-08-10T00:00:00Z")
	b := domain.NewRow().Set("name", "b").Set("finished_at", "2026-08-10T00:00:00Z")
	c := domain.NewRow().Set("name", "c")
	d := domain.NewRow().Set("name", "d")

	rows := []*domain.Row{a, b, c, d}
	SortNewestFirst(rows, []string{"finished_at"})

	assert.Equal(t, "a", rows[0].Value("name"))
	assert.Equal(t, "b", rows[1].Value("name"))
	assert.Equal(t, "c", rows[2].Value("name"))
	assert.Equal(t, "d", rows[3].Value("name"))
}

func TestParseTimestamp_Formats(t *testing.T) {
	cases := []struct {
		in   any
		want time.Time
		ok   bool
	}{
		{"2026-08-20T10:00:00Z", time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC), true},
		{"2026-08-20 10:00:00", time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC), true},
		{"2026-08-20", time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), true},
		{float64(1767225600), time.Unix(1767225600, 0).UTC(), true},
		{float64(1767225600000), time.UnixMilli(1767225600000).UTC(), true},
		{"1767225600", time.Unix(1767225600, 0).UTC(), true},
		{"", time.Time{}, false},
		{"not a time", time.Time{}, false},
		{nil, time.Time{}, false},
	}

	for _, tc := range cases {
		got, ok := ParseTimestamp(tc.in)
		assert.Equal(t, tc.ok, ok, "input %v", tc.in)
		if tc.ok {
			assert.True(t, got.Equal(tc.want), "input %v: got %v want %v", tc.in, got, tc.want)
		}
	}
}
