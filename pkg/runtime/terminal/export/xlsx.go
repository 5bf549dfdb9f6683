package export

import (
	"fmt"

	"github.com/de-tools/test-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

// maxSheetNameLen is the workbook format's hard limit on sheet names.
const maxSheetNameLen = 31

// writeXLSX emits a single workbook with one sheet per non-empty section.
func (w *Writer) writeXLSX(report *domain.Report) ([]string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sections := report.Sections()
	for i, section := range sections {
		name := sheetName(section)
		if i == 0 {
			// Reuse the default sheet for the first section.
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("failed to add sheet %s: %w", name, err)
			}
		}
		if err := fillSheet(f, name, report.Section(section)); err != nil {
			return nil, err
		}
	}

	path := w.combinedPath("xlsx")
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return []string{path}, nil
}

func sheetName(section string) string {
	if len(section) > maxSheetNameLen {
		return section[:maxSheetNameLen]
	}
	return section
}

func fillSheet(f *excelize.File, sheet string, rows []*domain.Row) error {
	header := rows[0].Keys()

	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := setRow(f, sheet, 1, headerCells); err != nil {
		return err
	}

	for i, row := range rows {
		cells := make([]any, len(header))
		for j, key := range header {
			cells[j] = row.Value(key)
		}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []any) error {
	ref, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to compute cell reference: %w", err)
	}
	if err := f.SetSheetRow(sheet, ref, &cells); err != nil {
		return fmt.Errorf("failed to write row %d of sheet %s: %w", rowNum, sheet, err)
	}
	return nil
}
