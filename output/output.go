package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"veracity/config"
	"veracity/logger"
	"veracity/scanner"
	"veracity/systeminfo"
)

const SchemaVersion = "1.0"

// Writer collects finalized records for the duration of a scan and
// renders the report on Close. Buffering is required because the CSV
// layout needs the union of check columns across all records, and all
// formats emit records in stable path order.
type Writer struct {
	mu      sync.Mutex
	cfg     *config.Config
	sysInfo *systeminfo.SystemInfo
	records []*scanner.FileRecord
	otel    *otelLogger
	base    string
	format  string
}

func New(cfg *config.Config, sysInfo *systeminfo.SystemInfo) (*Writer, error) {
	format := strings.ToLower(cfg.OutputFormat)
	if format == "" {
		format = "json"
	}
	w := &Writer{
		cfg:     cfg,
		sysInfo: sysInfo,
		base:    cfg.OutputFileName,
		format:  format,
	}
	otel, err := newOtelLogger(cfg)
	if err != nil {
		logger.Warnf("OTEL export disabled: %v", err)
	} else {
		w.otel = otel
	}
	return w, nil
}

// WriteRecord buffers one finalized record. Safe for concurrent use by
// the worker pool.
func (w *Writer) WriteRecord(rec *scanner.FileRecord) {
	w.mu.Lock()
	w.records = append(w.records, rec)
	w.mu.Unlock()
	if w.otel != nil {
		w.otel.Emit("file", rec)
	}
}

// Close renders the report in the configured format plus the summary
// sidecar, and flushes the OTEL pipeline.
func (w *Writer) Close(summary scanner.Summary) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	sort.Slice(w.records, func(i, j int) bool {
		return w.records[i].Path < w.records[j].Path
	})

	var err error
	switch w.format {
	case "csv":
		err = w.writeCSV(w.base + ".csv")
	case "txt":
		err = w.writeSummaryTXT(w.base+".txt", summary)
	default:
		err = w.writeJSON(w.base+".json", summary)
	}
	if err != nil {
		return err
	}

	// The summary sidecar accompanies every format.
	if w.format != "txt" {
		if err := w.writeSummaryTXT(w.base+"_summary.txt", summary); err != nil {
			return err
		}
	}

	if w.otel != nil {
		w.otel.Emit("summary", summary)
		w.otel.Shutdown()
	}
	return nil
}

type report struct {
	SchemaVersion string                 `json:"schema_version"`
	SystemInfo    *systeminfo.SystemInfo `json:"system_info,omitempty"`
	Summary       scanner.Summary        `json:"summary"`
	Details       []*scanner.FileRecord  `json:"details"`
}

func (w *Writer) writeJSON(name string, summary scanner.Summary) error {
	details := w.records
	if details == nil {
		details = []*scanner.FileRecord{}
	}
	data, err := jsonMarshalIndent(report{
		SchemaVersion: SchemaVersion,
		SystemInfo:    w.sysInfo,
		Summary:       summary,
		Details:       details,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(name, append(data, '\n'), 0600)
}

var csvBaseColumns = []string{
	"path", "name", "size", "status",
	"is_accessible", "is_readable", "permissions",
	"mod_time", "creation_time", "access_time", "change_time",
	"mime_type", "hashes", "error", "warning", "suggestion",
}

func (w *Writer) writeCSV(name string) error {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := bufio.NewWriterSize(f, 1024*1024)
	csvw := csv.NewWriter(buf)

	checkColumns := w.checkColumnUnion()
	header := append(append([]string{}, csvBaseColumns...), checkColumns...)
	if err := csvw.Write(header); err != nil {
		return err
	}

	for _, rec := range w.records {
		row := []string{
			rec.Path,
			rec.Name,
			fmt.Sprintf("%d", rec.Size),
			string(rec.Status),
			fmt.Sprintf("%t", rec.IsAccessible),
			fmt.Sprintf("%t", rec.IsReadable),
			rec.Permissions,
			rec.ModTime,
			rec.CreationTime,
			rec.AccessTime,
			rec.ChangeTime,
			rec.MimeType,
			jsonString(rec.Hashes),
			rec.Error,
			rec.Warning,
			rec.Suggestion,
		}
		for _, col := range checkColumns {
			key := strings.TrimPrefix(col, "specific_")
			row = append(row, checkValue(rec.Checks, key))
		}
		if err := csvw.Write(row); err != nil {
			return err
		}
	}

	csvw.Flush()
	if err := csvw.Error(); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

// checkColumnUnion returns the sorted union of check keys across all
// records, prefixed for the CSV header.
func (w *Writer) checkColumnUnion() []string {
	seen := make(map[string]struct{})
	for _, rec := range w.records {
		for key := range rec.Checks {
			seen[key] = struct{}{}
		}
	}
	columns := make([]string, 0, len(seen))
	for key := range seen {
		columns = append(columns, "specific_"+key)
	}
	sort.Strings(columns)
	return columns
}

func checkValue(checks map[string]interface{}, key string) string {
	if checks == nil {
		return ""
	}
	value, ok := checks[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case bool, int, int64, float64:
		return fmt.Sprint(v)
	default:
		return jsonString(v)
	}
}

func (w *Writer) writeSummaryTXT(name string, summary scanner.Summary) error {
	var b strings.Builder
	b.WriteString("File Integrity Report\n")
	b.WriteString("=====================\n\n")
	fmt.Fprintf(&b, "Scan date:      %s\n", summary.ScanDate)
	fmt.Fprintf(&b, "Directories:    %s\n", strings.Join(summary.InputDirs, ", "))
	fmt.Fprintf(&b, "Duration:       %.2fs\n\n", summary.DurationSeconds)
	fmt.Fprintf(&b, "Total files:    %d\n", summary.TotalFiles)
	fmt.Fprintf(&b, "Intact:         %d (%s)\n", summary.IntactFiles, pct(summary.IntactFiles, summary.TotalFiles))
	fmt.Fprintf(&b, "Corrupted:      %d (%s)\n", summary.CorruptedFiles, pct(summary.CorruptedFiles, summary.TotalFiles))
	fmt.Fprintf(&b, "Inaccessible:   %d (%s)\n", summary.InaccessibleFiles, pct(summary.InaccessibleFiles, summary.TotalFiles))
	fmt.Fprintf(&b, "Unknown:        %d (%s)\n", summary.UnknownFiles, pct(summary.UnknownFiles, summary.TotalFiles))
	fmt.Fprintf(&b, "Empty files:    %d\n", summary.EmptyFiles)
	fmt.Fprintf(&b, "Spreadsheets:   %d (advanced checks: %t)\n", summary.SpreadsheetFiles, summary.EnhancedChecks)

	flagged := w.nonIntact()
	if len(flagged) > 0 {
		b.WriteString("\nFlagged files\n")
		b.WriteString("-------------\n")
		for _, rec := range flagged {
			fmt.Fprintf(&b, "%-14s %s", rec.Status, rec.Path)
			if rec.Error != "" {
				fmt.Fprintf(&b, " - %s", rec.Error)
			} else if rec.Warning != "" {
				fmt.Fprintf(&b, " - %s", rec.Warning)
			}
			b.WriteByte('\n')
		}
	}

	return os.WriteFile(name, []byte(b.String()), 0600)
}

func (w *Writer) nonIntact() []*scanner.FileRecord {
	var flagged []*scanner.FileRecord
	for _, rec := range w.records {
		if rec.Status != scanner.StatusIntact {
			flagged = append(flagged, rec)
		}
	}
	return flagged
}

func pct(count, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
}

func jsonString(value interface{}) string {
	if value == nil {
		return ""
	}
	bytes, err := jsonMarshal(value)
	if err != nil {
		return ""
	}
	return string(bytes)
}
