package flatten

import (
	"strings"

	"github.com/de-tools/test-atlas/pkg/models/domain"
	"github.com/de-tools/test-atlas/pkg/store/client"
)

const (
	nodeTypeTest = "TEST"
	nodeTypeHook = "HOOK"

	// scopeSeparator joins ancestor display names into the scope path.
	scopeSeparator = " > "

	tagSeparator = ","
)

// BuildRow lifts a build detail payload into one flat build row.
func BuildRow(d client.Payload) *domain.Row {
	return domain.NewRow().
		Set("build_id", d.Str("id")).
		Set("name", d.Str("name")).
		Set("project_name", d.Str("project_name")).
		Set("user_name", d.Str("user_name")).
		Set("status", d.Str("status")).
		Set("duration_ms", d.Num("duration")).
		Set("started_at", d.Str("started_at")).
		Set("finished_at", d.Str("finished_at")).
		Set("tags", strings.Join(d.Strings("tags"), tagSeparator)).
		Set("passed", d.Num("passed_count")).
		Set("failed", d.Num("failed_count")).
		Set("skipped", d.Num("skipped_count")).
		Set("flaky_count", d.Num("flaky_count")).
		Set("new_failures", d.Num("new_failures_count")).
		Set("report_url", d.Str("report_url"))
}

// rootMeta is the root-level metadata copied onto every descendant row.
// Each row must be self-contained in flat tabular output, so the
// denormalization is deliberate.
type rootMeta struct {
	buildID        string
	buildName      string
	filePath       string
	os             string
	osVersion      string
	browser        string
	browserVersion string
	device         string
	finishedAt     string
}

// TestRows flattens the hierarchical test-run trees of one build into one
// row per qualifying node. HOOK-typed nodes are included only when
// includeHooks is set.
func TestRows(roots []client.Payload, buildID, buildName string, includeHooks bool) []*domain.Row {
	var rows []*domain.Row
	for _, root := range roots {
		details := root.Map("details")
		meta := rootMeta{
			buildID:        buildID,
			buildName:      buildName,
			filePath:       details.Str("file_path"),
			os:             details.Str("os"),
			osVersion:      details.Str("os_version"),
			browser:        details.Str("browser"),
			browserVersion: details.Str("browser_version"),
			device:         details.Str("device"),
			finishedAt:     details.Str("finished_at"),
		}
		rows = append(rows, walk(root, nil, meta, includeHooks)...)
	}
	return rows
}

// walk traverses one node depth-first, pre-order. path holds the strict
// ancestors' display names; the node's own name is appended only for its
// children.
func walk(node client.Payload, path []string, meta rootMeta, includeHooks bool) []*domain.Row {
	var rows []*domain.Row

	name := node.Str("display_name")
	if qualifies(node.Str("type"), includeHooks) && name != "" {
		rows = append(rows, testRow(node, name, path, meta))
	}

	childPath := path
	if name != "" {
		childPath = append(append([]string{}, path...), name)
	}
	for _, child := range node.Slice("children") {
		rows = append(rows, walk(child, childPath, meta, includeHooks)...)
	}
	return rows
}

func qualifies(nodeType string, includeHooks bool) bool {
	if nodeType == nodeTypeTest {
		return true
	}
	return includeHooks && nodeType == nodeTypeHook
}

func testRow(node client.Payload, name string, path []string, meta rootMeta) *domain.Row {
	details := node.Map("details")

	// Only the first recorded retry's failure data is surfaced; it is
	// what the reporting UI shows as the primary failure.
	retries := node.Slice("retries")
	var firstRetry client.Payload
	if len(retries) > 0 {
		firstRetry = retries[0]
	}

	return domain.NewRow().
		Set("build_id", meta.buildID).
		Set("build_name", meta.buildName).
		Set("test_id", details.Str("id")).
		Set("name", name).
		Set("type", node.Str("type")).
		Set("scope", strings.Join(path, scopeSeparator)).
		Set("status", details.Str("status")).
		Set("duration_ms", details.Num("duration")).
		Set("tags", strings.Join(details.Strings("tags"), tagSeparator)).
		Set("retries", float64(len(retries))).
		Set("flaky", details.Bool("flaky")).
		Set("new_failure", details.Bool("new_failure")).
		Set("failure_reason", firstRetry.Str("failure_reason")).
		Set("failure_log", firstRetry.Str("failure_log")).
		Set("finished_at", details.Str("finished_at")).
		Set("file_path", meta.filePath).
		Set("os", meta.os).
		Set("os_version", meta.osVersion).
		Set("browser", meta.browser).
		Set("browser_version", meta.browserVersion).
		Set("device", meta.device).
		Set("build_finished_at", meta.finishedAt)
}
