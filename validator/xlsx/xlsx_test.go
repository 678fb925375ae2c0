package xlsx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"veracity/validator"
)

func buildWorkbook(t *testing.T) string {
	t.Helper()
	book := excelize.NewFile()
	defer book.Close()

	rows := [][]interface{}{
		{"name", "age", "notes"},
		{"alice", 30, "first"},
		{"bob", 41, ""},
		{"carol", 29, "third"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := book.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "people.xlsx")
	if err := book.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestReaderRegistered(t *testing.T) {
	r := validator.LookupWorkbookReader()
	if r == nil {
		t.Fatal("expected reader to register at init")
	}
	if r.Name() != "excelize" {
		t.Errorf("Name() = %q, want excelize", r.Name())
	}
}

func TestReadWorkbook(t *testing.T) {
	path := buildWorkbook(t)

	info, err := reader{}.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if info.SheetsCount != 1 {
		t.Fatalf("SheetsCount = %d, want 1", info.SheetsCount)
	}
	if len(info.Sheets) != 1 {
		t.Fatalf("len(Sheets) = %d, want 1", len(info.Sheets))
	}

	sheet := info.Sheets[0]
	if sheet.Name != "Sheet1" {
		t.Errorf("sheet name = %q, want Sheet1", sheet.Name)
	}
	if sheet.RowsCount != 4 {
		t.Errorf("RowsCount = %d, want 4", sheet.RowsCount)
	}
	if sheet.ColumnsCount != 3 {
		t.Errorf("ColumnsCount = %d, want 3", sheet.ColumnsCount)
	}
	if len(sheet.ColumnNames) != 3 || sheet.ColumnNames[0] != "name" {
		t.Errorf("ColumnNames = %v", sheet.ColumnNames)
	}
	if got := sheet.ColumnTypes["age"]; got != "numeric" {
		t.Errorf("age column type = %q, want numeric", got)
	}
	if got := sheet.ColumnTypes["name"]; got != "text" {
		t.Errorf("name column type = %q, want text", got)
	}
	if sheet.MissingCells == 0 {
		t.Error("expected the empty notes cell to count as missing")
	}
}

func TestReadNotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.xlsx")
	if err := os.WriteFile(path, []byte("PK\x03\x04 not really"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (reader{}).Read(path); err == nil {
		t.Fatal("expected error for non-workbook content")
	}
}
