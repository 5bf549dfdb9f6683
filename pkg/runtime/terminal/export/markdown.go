package export

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/de-tools/test-atlas/pkg/models/domain"
)

// lineBreakMarker replaces embedded newlines in markdown cells.
const lineBreakMarker = "<br>"

// writeMarkdown emits one document with a pipe table per non-empty
// section. When the row cap is configured and exceeded, the table is cut
// at the cap and a trailing note says how many rows were omitted.
func (w *Writer) writeMarkdown(report *domain.Report) ([]string, error) {
	path := w.combinedPath("md")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	buf := bufio.NewWriter(f)
	fmt.Fprintf(buf, "# %s\n", w.baseName)

	for _, section := range report.Sections() {
		rows := report.Section(section)
		fmt.Fprintf(buf, "\n## %s\n\n", section)
		writeMarkdownTable(buf, rows, w.markdownMaxRows, section)
	}

	if err := buf.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close %s: %w", path, err)
	}
	return []string{path}, nil
}

func writeMarkdownTable(buf *bufio.Writer, rows []*domain.Row, maxRows int, section string) {
	header := rows[0].Keys()

	cells := make([]string, len(header))
	copy(cells, header)
	fmt.Fprintf(buf, "| %s |\n", strings.Join(cells, " | "))

	for i := range cells {
		cells[i] = "---"
	}
	fmt.Fprintf(buf, "| %s |\n", strings.Join(cells, " | "))

	limit := len(rows)
	if maxRows > 0 && maxRows < limit {
		limit = maxRows
	}
	for _, row := range rows[:limit] {
		for i, key := range header {
			cells[i] = markdownCell(row.Value(key))
		}
		fmt.Fprintf(buf, "| %s |\n", strings.Join(cells, " | "))
	}

	if omitted := len(rows) - limit; omitted > 0 {
		fmt.Fprintf(buf, "\n_%d more %s row(s) omitted; the full collection is in the csv, xlsx and json output._\n",
			omitted, section)
	}
}

func markdownCell(v any) string {
	s := cell(v)
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", lineBreakMarker)
	s = strings.ReplaceAll(s, "\n", lineBreakMarker)
	s = strings.ReplaceAll(s, "\r", lineBreakMarker)
	return s
}
