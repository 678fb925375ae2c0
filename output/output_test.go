package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"veracity/config"
	"veracity/scanner"
)

func testWriter(t *testing.T, format string) (*Writer, string) {
	t.Helper()
	base := filepath.Join(t.TempDir(), "report")
	cfg := &config.Config{OutputFormat: format, OutputFileName: base}
	w, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w, base
}

func sampleRecords() []*scanner.FileRecord {
	return []*scanner.FileRecord{
		{
			Path: "/data/b.csv", Name: "b.csv", Size: 10,
			IsAccessible: true, IsReadable: true,
			Status: scanner.StatusIntact,
			Hashes: map[string]string{"sha256": "abc"},
			Checks: map[string]interface{}{"format": "csv", "rows_count": 2},
		},
		{
			Path: "/data/a.json", Name: "a.json", Size: 5,
			IsAccessible: true, IsReadable: true,
			Status: scanner.StatusCorrupted, Error: "invalid JSON: unexpected end",
			Checks: map[string]interface{}{"format": "json"},
		},
		{
			Path: "/data/c.txt", Name: "c.txt", Size: 0,
			IsAccessible: true, IsReadable: true,
			Status: scanner.StatusUnknown, Warning: "empty file",
		},
	}
}

func sampleSummary() scanner.Summary {
	return scanner.Summary{
		ScanDate:       "2026-08-30T00:00:00Z",
		InputDirs:      []string{"/data"},
		TotalFiles:     3,
		IntactFiles:    1,
		CorruptedFiles: 1,
		UnknownFiles:   1,
		EmptyFiles:     1,
	}
}

func TestWriteJSONReport(t *testing.T) {
	w, base := testWriter(t, "json")
	for _, rec := range sampleRecords() {
		w.WriteRecord(rec)
	}
	if err := w.Close(sampleSummary()); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatal(err)
	}
	var rep struct {
		SchemaVersion string                   `json:"schema_version"`
		Summary       scanner.Summary          `json:"summary"`
		Details       []map[string]interface{} `json:"details"`
	}
	if err := json.Unmarshal(raw, &rep); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if rep.SchemaVersion != SchemaVersion {
		t.Errorf("schema_version = %q", rep.SchemaVersion)
	}
	if rep.Summary.TotalFiles != 3 {
		t.Errorf("summary total = %d, want 3", rep.Summary.TotalFiles)
	}
	if len(rep.Details) != 3 {
		t.Fatalf("details = %d records, want 3", len(rep.Details))
	}
	// Stable path order.
	if rep.Details[0]["path"] != "/data/a.json" || rep.Details[2]["path"] != "/data/c.txt" {
		t.Errorf("details not sorted by path: %v, %v", rep.Details[0]["path"], rep.Details[2]["path"])
	}

	if _, err := os.Stat(base + "_summary.txt"); err != nil {
		t.Error("expected summary sidecar alongside JSON report")
	}
}

func TestWriteCSVReport(t *testing.T) {
	w, base := testWriter(t, "csv")
	for _, rec := range sampleRecords() {
		w.WriteRecord(rec)
	}
	if err := w.Close(sampleSummary()); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(base + ".csv")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("report is not valid CSV: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header + 3 records", len(rows))
	}

	header := rows[0]
	col := map[string]int{}
	for i, name := range header {
		col[name] = i
	}
	for _, want := range []string{"path", "status", "specific_format", "specific_rows_count"} {
		if _, ok := col[want]; !ok {
			t.Errorf("missing column %q in %v", want, header)
		}
	}
	// First data row is a.json; it has no rows_count, so the cell is blank.
	if got := rows[1][col["specific_rows_count"]]; got != "" {
		t.Errorf("a.json specific_rows_count = %q, want blank", got)
	}
	if got := rows[2][col["specific_rows_count"]]; got != "2" {
		t.Errorf("b.csv specific_rows_count = %q, want 2", got)
	}
}

func TestWriteTXTReport(t *testing.T) {
	w, base := testWriter(t, "txt")
	for _, rec := range sampleRecords() {
		w.WriteRecord(rec)
	}
	if err := w.Close(sampleSummary()); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, err := os.ReadFile(base + ".txt")
	if err != nil {
		t.Fatal(err)
	}
	text := string(raw)
	for _, want := range []string{
		"Total files:    3",
		"Intact:         1 (33.3%)",
		"CORRUPTED",
		"/data/a.json",
		"invalid JSON",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q", want)
		}
	}
	if strings.Contains(text, "/data/b.csv") {
		t.Error("intact files must not be itemized")
	}
}

func TestPct(t *testing.T) {
	if got := pct(1, 3); got != "33.3%" {
		t.Errorf("pct(1,3) = %q", got)
	}
	if got := pct(0, 0); got != "0.0%" {
		t.Errorf("pct(0,0) = %q", got)
	}
}
