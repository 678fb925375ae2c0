// Package xlsx provides the advanced workbook reader backed by
// excelize. Importing it for side effects registers the reader with
// the validator package.
package xlsx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"veracity/validator"
)

const (
	// maxSheets bounds the per-workbook inspection cost.
	maxSheets = 5
	// maxColumnNames bounds the header columns captured per sheet.
	maxColumnNames = 20
)

func init() {
	validator.RegisterWorkbookReader(reader{})
}

type reader struct{}

func (reader) Name() string { return "excelize" }

func (reader) Read(path string) (*validator.WorkbookInfo, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer book.Close()

	names := book.GetSheetList()
	info := &validator.WorkbookInfo{
		SheetsCount: len(names),
		SheetNames:  names,
	}

	inspect := names
	if len(inspect) > maxSheets {
		inspect = inspect[:maxSheets]
	}
	for _, name := range inspect {
		sheet, err := inspectSheet(book, name)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		info.Sheets = append(info.Sheets, sheet)
	}
	return info, nil
}

func inspectSheet(book *excelize.File, name string) (validator.SheetInfo, error) {
	rows, err := book.GetRows(name)
	if err != nil {
		return validator.SheetInfo{}, err
	}

	sheet := validator.SheetInfo{Name: name, RowsCount: len(rows)}
	if len(rows) == 0 {
		return sheet, nil
	}

	columns := 0
	for _, row := range rows {
		if len(row) > columns {
			columns = len(row)
		}
	}
	sheet.ColumnsCount = columns

	for i, header := range rows[0] {
		if i >= maxColumnNames {
			break
		}
		if header == "" {
			header = fmt.Sprintf("column_%d", i+1)
		}
		sheet.ColumnNames = append(sheet.ColumnNames, header)
	}

	sheet.ColumnTypes = columnTypes(rows, columns)
	sheet.MissingCells, sheet.MissingPct = missingCells(rows, columns)
	return sheet, nil
}

// columnTypes derives a coarse per-column type from the data rows:
// numeric when every non-empty cell parses as a number, text
// otherwise, empty when the column has no values at all.
func columnTypes(rows [][]string, columns int) map[string]string {
	if len(rows) < 2 || columns == 0 {
		return nil
	}
	types := make(map[string]string, columns)
	for col := 0; col < columns; col++ {
		numeric, seen := true, false
		for _, row := range rows[1:] {
			if col >= len(row) || strings.TrimSpace(row[col]) == "" {
				continue
			}
			seen = true
			if _, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64); err != nil {
				numeric = false
			}
		}
		key := columnKey(rows[0], col)
		switch {
		case !seen:
			types[key] = "empty"
		case numeric:
			types[key] = "numeric"
		default:
			types[key] = "text"
		}
	}
	return types
}

func columnKey(header []string, col int) string {
	if col < len(header) && header[col] != "" {
		return header[col]
	}
	return fmt.Sprintf("column_%d", col+1)
}

func missingCells(rows [][]string, columns int) (int, float64) {
	if len(rows) == 0 || columns == 0 {
		return 0, 0
	}
	missing := 0
	for _, row := range rows {
		for col := 0; col < columns; col++ {
			if col >= len(row) || strings.TrimSpace(row[col]) == "" {
				missing++
			}
		}
	}
	total := len(rows) * columns
	return missing, float64(missing) / float64(total) * 100
}
