package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/de-tools/test-atlas/pkg/models/domain"
)

// writeCSV emits one delimited-text file per non-empty section. The
// header comes from the first row's columns; encoding/csv quote-wraps
// values containing the delimiter, quotes or newlines, doubling internal
// quotes.
func (w *Writer) writeCSV(report *domain.Report) ([]string, error) {
	var files []string
	for _, section := range report.Sections() {
		path := w.sectionPath(section, "csv")
		if err := writeCSVFile(path, report.Section(section)); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	return files, nil
}

func writeCSVFile(path string, rows []*domain.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	cw := csv.NewWriter(f)
	header := rows[0].Keys()
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}

	record := make([]string, len(header))
	for _, row := range rows {
		for i, key := range header {
			record[i] = cell(row.Value(key))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return f.Close()
}
