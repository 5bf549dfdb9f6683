package pipeline

import (
	"testing"
	"time"

	"github.com/de-tools/test-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

func buildRowNamed(project, finishedAt string) *domain.Row {
	return domain.NewRow().
		Set("project_name", project).
		Set("name", project+" nightly").
		Set("finished_at", finishedAt)
}

func TestFilter_EmptyKeywordListIsNoOp(t *testing.T) {
	rows := []*domain.Row{
		buildRowNamed("storefront", "2026-08-22T10:00:00Z"),
		buildRowNamed("payments", "2026-08-21T10:00:00Z"),
	}

	out := Filter(rows, domain.FilterConfig{}, Profiles[domain.SectionBuilds], testNow)

	require.Len(t, out, 2)
	assert.Same(t, rows[0], out[0])
	assert.Same(t, rows[1], out[1])
}

func TestFilter_KeywordMatchesSubstringCaseInsensitive(t *testing.T) {
	rows := []*domain.Row{
		buildRowNamed("Storefront", ""),
		buildRowNamed("payments", ""),
	}

	out := Filter(rows, domain.FilterConfig{
		ProjectKeywords: []string{"STOREFRONT"},
	}, Profiles[domain.SectionBuilds], testNow)

	require.Len(t, out, 1)
	assert.Equal(t, "Storefront", out[0].Value("project_name"))
}

func TestFilter_CaseSensitiveKeyword(t *testing.T) {
	rows := []*domain.Row{buildRowNamed("Storefront", "")}

	out := Filter(rows, domain.FilterConfig{
		ProjectKeywords: []string{"storefront"},
		CaseSensitive:   true,
	}, Profiles[domain.SectionBuilds], testNow)

	assert.Empty(t, out)
}

func TestFilter_PlaceholderKeywordsAreDropped(t *testing.T) {
	rows := []*domain.Row{buildRowNamed("payments", "")}

	// Both keywords normalize away, so the clause passes everything.
	out := Filter(rows, domain.FilterConfig{
		ProjectKeywords: []string{"  ", "replace-with-project"},
	}, Profiles[domain.SectionBuilds], testNow)

	assert.Len(t, out, 1)
}

func TestFilter_TimeWindow(t *testing.T) {
	days := 7.0
	recent := buildRowNamed("a", testNow.Add(-2*24*time.Hour).Format(time.RFC3339))
	stale := buildRowNamed("b", testNow.Add(-10*24*time.Hour).Format(time.RFC3339))
	timeless := buildRowNamed("c", "")

	out := Filter([]*domain.Row{recent, stale, timeless}, domain.FilterConfig{Days: &days},
		Profiles[domain.SectionBuilds], testNow)

	// The stale row is excluded; the row with no timestamp is retained.
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Value("project_name"))
	assert.Equal(t, "c", out[1].Value("project_name"))
}

func TestFilter_NilDaysPassesEverything(t *testing.T) {
	stale := buildRowNamed("old", testNow.Add(-365*24*time.Hour).Format(time.RFC3339))

	out := Filter([]*domain.Row{stale}, domain.FilterConfig{}, Profiles[domain.SectionBuilds], testNow)

	assert.Len(t, out, 1)
}

func TestFilter_AppRowsSkipWindowUnlessConfigured(t *testing.T) {
	days := 7.0
	oldApp := domain.NewRow().
		Set("name", "driver.apk").
		Set("uploaded_at", testNow.Add(-30*24*time.Hour).Format(time.RFC3339))

	kept := Filter([]*domain.Row{oldApp}, domain.FilterConfig{Days: &days},
		Profiles[domain.SectionApps], testNow)
	assert.Len(t, kept, 1)

	dropped := Filter([]*domain.Row{oldApp}, domain.FilterConfig{Days: &days, ApplyDaysToApps: true},
		Profiles[domain.SectionApps], testNow)
	assert.Empty(t, dropped)
}

func TestFilter_ClausesAreANDed(t *testing.T) {
	row := domain.NewRow().
		Set("project_name", "storefront").
		Set("user_name", "alice").
		Set("finished_at", "")

	out := Filter([]*domain.Row{row}, domain.FilterConfig{
		ProjectKeywords: []string{"storefront"},
		PersonKeywords:  []string{"bob"},
	}, Profiles[domain.SectionBuilds], testNow)

	assert.Empty(t, out)
}
