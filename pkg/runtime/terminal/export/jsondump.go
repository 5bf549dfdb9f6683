package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/de-tools/test-atlas/pkg/models/domain"
)

// writeJSON emits one indented JSON file per non-empty section. Rows
// marshal their columns in insertion order.
func (w *Writer) writeJSON(report *domain.Report) ([]string, error) {
	var files []string
	for _, section := range report.Sections() {
		path := w.sectionPath(section, "json")

		data, err := json.MarshalIndent(report.Section(section), "", "  ")
		if err != nil {
			return files, fmt.Errorf("failed to marshal %s rows: %w", section, err)
		}
		data = append(data, '\n')

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return files, fmt.Errorf("failed to write %s: %w", path, err)
		}
		files = append(files, path)
	}
	return files, nil
}
