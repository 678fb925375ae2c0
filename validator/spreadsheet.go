package validator

import (
	"bytes"
	"path/filepath"
	"strings"
)

var (
	xlsxMagic = []byte{'P', 'K', 0x03, 0x04}
	xlsMagic  = []byte{0xd0, 0xcf, 0x11, 0xe0}
)

// spreadsheetValidator handles .xlsx and .xls. The basic tier checks
// the container magic bytes only. When the advanced tier is enabled
// and a workbook reader is registered, .xlsx files additionally get a
// full sheet-level inspection. Both extensions negotiate the advanced
// tier, but .xls stays on the basic tier with a warning because the
// reader only understands the OOXML container.
type spreadsheetValidator struct {
	advanced func() bool
}

func (*spreadsheetValidator) Name() string { return "spreadsheet" }

func (v *spreadsheetValidator) Validate(path string) Result {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xls" {
		return v.validateLegacy(path)
	}
	return v.validateOOXML(path)
}

func (v *spreadsheetValidator) validateLegacy(path string) Result {
	result := newResult("xls")

	header, err := readHeader(path, len(xlsMagic))
	if err != nil {
		result.Err = err.Error()
		return result
	}
	if bytes.Equal(header, xlsMagic) {
		result.Details["format_valid"] = true
	}

	if v.advanced == nil || !v.advanced() {
		result.Warning = "advanced spreadsheet checks disabled"
		result.Suggestion = "enable advanced spreadsheet validation for sheet-level detail"
		return result
	}
	result.Warning = "advanced checks cover xlsx workbooks only"
	result.Suggestion = "convert legacy workbooks to xlsx for sheet-level detail"
	return result
}

func (v *spreadsheetValidator) validateOOXML(path string) Result {
	result := newResult("xlsx")

	header, err := readHeader(path, len(xlsxMagic))
	if err != nil {
		result.Err = err.Error()
		return result
	}
	if !bytes.Equal(header, xlsxMagic) {
		return result
	}
	result.Details["format_valid"] = true

	if v.advanced == nil || !v.advanced() {
		result.Warning = "advanced spreadsheet checks disabled"
		result.Suggestion = "enable advanced spreadsheet validation for sheet-level detail"
		return result
	}

	reader := LookupWorkbookReader()
	if reader == nil {
		result.Warning = "no workbook reader available"
		result.Suggestion = "rebuild with the xlsx workbook reader included"
		return result
	}

	info, err := reader.Read(path)
	if err != nil {
		// A workbook that passed the magic check but cannot be opened
		// is structurally broken.
		result.Err = err.Error()
		return result
	}

	result.Details["sheets_count"] = info.SheetsCount
	result.Details["sheet_names"] = info.SheetNames
	if len(info.Sheets) > 0 {
		result.Details["sheets"] = info.Sheets
	}
	return result
}
