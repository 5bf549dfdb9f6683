package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/de-tools/test-atlas/pkg/models/domain"
)

// Format names accepted in output.formats.
const (
	FormatCSV      = "csv"
	FormatXLSX     = "xlsx"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Writer renders a finished report into the configured formats. Each
// serializer is independent and order-preserving; they all read the same
// final row collections.
type Writer struct {
	dir             string
	baseName        string
	formats         map[string]bool
	markdownMaxRows int
}

func NewWriter(out domain.OutputConfig) *Writer {
	formats := make(map[string]bool, len(out.Formats))
	for _, f := range out.Formats {
		formats[f] = true
	}
	return &Writer{
		dir:             out.Dir,
		baseName:        out.BaseName,
		formats:         formats,
		markdownMaxRows: out.MarkdownMaxRows,
	}
}

// Write renders every enabled format and returns the paths written. The
// output directory is created once, idempotently, before any file.
func (w *Writer) Write(report *domain.Report) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", w.dir, err)
	}

	var files []string
	add := func(paths []string, err error) error {
		if err != nil {
			return err
		}
		files = append(files, paths...)
		return nil
	}

	if w.formats[FormatCSV] {
		if err := add(w.writeCSV(report)); err != nil {
			return files, err
		}
	}
	if w.formats[FormatXLSX] {
		if err := add(w.writeXLSX(report)); err != nil {
			return files, err
		}
	}
	if w.formats[FormatMarkdown] {
		if err := add(w.writeMarkdown(report)); err != nil {
			return files, err
		}
	}
	if w.formats[FormatJSON] {
		if err := add(w.writeJSON(report)); err != nil {
			return files, err
		}
	}
	return files, nil
}

func (w *Writer) sectionPath(section, ext string) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s_%s.%s", w.baseName, section, ext))
}

func (w *Writer) combinedPath(ext string) string {
	return filepath.Join(w.dir, w.baseName+"."+ext)
}

// cell renders a row value for text output.
func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
