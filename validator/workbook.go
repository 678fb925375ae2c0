package validator

import "sync"

// SheetInfo summarizes one worksheet of an inspected workbook.
type SheetInfo struct {
	Name         string            `json:"name"`
	RowsCount    int               `json:"rows_count"`
	ColumnsCount int               `json:"columns_count"`
	ColumnNames  []string          `json:"column_names,omitempty"`
	ColumnTypes  map[string]string `json:"column_types,omitempty"`
	MissingCells int               `json:"missing_cells"`
	MissingPct   float64           `json:"missing_percentage"`
}

// WorkbookInfo is the rich inspection produced by an advanced
// workbook reader.
type WorkbookInfo struct {
	SheetsCount int         `json:"sheets_count"`
	SheetNames  []string    `json:"sheet_names"`
	Sheets      []SheetInfo `json:"sheets,omitempty"`
}

// WorkbookReader is the optional deep-inspection capability for .xlsx
// files. Implementations register themselves at init time; the
// spreadsheet validator looks one up per scan and falls back to
// magic-byte checks when none is present.
type WorkbookReader interface {
	// Name identifies the backing implementation for log lines.
	Name() string

	// Read inspects the workbook at path. A structural failure (bad
	// zip container, broken sheet XML) is returned as an error.
	Read(path string) (*WorkbookInfo, error)
}

var (
	workbookMu     sync.RWMutex
	workbookReader WorkbookReader
)

// RegisterWorkbookReader installs the advanced workbook reader. Meant
// to be called from an init function of the implementing package; the
// last registration wins.
func RegisterWorkbookReader(r WorkbookReader) {
	workbookMu.Lock()
	workbookReader = r
	workbookMu.Unlock()
}

// LookupWorkbookReader returns the registered reader, or nil when the
// advanced tier is not compiled in.
func LookupWorkbookReader() WorkbookReader {
	workbookMu.RLock()
	defer workbookMu.RUnlock()
	return workbookReader
}
