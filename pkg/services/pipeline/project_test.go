package pipeline

import (
	"testing"

	"github.com/de-tools/test-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_NoSpecPassesThrough(t *testing.T) {
	rows := []*domain.Row{domain.NewRow().Set("a", 1.0)}

	out := Project(rows, nil)

	assert.Same(t, rows[0], out[0])
}

func TestProject_SelectsRenamesAndOrders(t *testing.T) {
	row := domain.NewRow().
		Set("build_id", "b1").
		Set("status", "passed").
		Set("name", "nightly")

	out := Project([]*domain.Row{row}, []domain.ColumnSpec{
		{Key: "name", Header: "Build"},
		{Key: "status"},
	})

	require.Len(t, out, 1)
	assert.Equal(t, []string{"Build", "status"}, out[0].Keys())
	assert.Equal(t, "nightly", out[0].Value("Build"))
	assert.Equal(t, "passed", out[0].Value("status"))
}

func TestProject_NestedPathLookup(t *testing.T) {
	row := domain.NewRow().
		Set("details", map[string]any{"status": "failed", "env": map[string]any{"os": "linux"}})

	out := Project([]*domain.Row{row}, []domain.ColumnSpec{
		{Key: "details.status"},
		{Key: "details.env.os", Header: "OS"},
	})

	require.Len(t, out, 1)
	assert.Equal(t, "failed", out[0].Value("details.status"))
	assert.Equal(t, "linux", out[0].Value("OS"))
}

func TestProject_DefaultFillsAbsentPaths(t *testing.T) {
	row := domain.NewRow().Set("name", "nightly")

	out := Project([]*domain.Row{row}, []domain.ColumnSpec{
		{Key: "details.status", Default: "unknown"},
		{Key: "missing"},
	})

	require.Len(t, out, 1)
	assert.Equal(t, "unknown", out[0].Value("details.status"))
	assert.Equal(t, "", out[0].Value("missing"))
}

func TestProject_NilValueFallsBackToDefault(t *testing.T) {
	row := domain.NewRow().Set("status", nil)

	out := Project([]*domain.Row{row}, []domain.ColumnSpec{
		{Key: "status", Default: "n/a"},
	})

	assert.Equal(t, "n/a", out[0].Value("status"))
}
