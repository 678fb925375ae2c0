package scanner

import (
	"sync"
	"time"
)

// Summary aggregates one scan run. The per-status counters always sum
// to TotalFiles.
type Summary struct {
	ScanDate          string   `json:"scan_date"`
	InputDirs         []string `json:"input_dirs"`
	TotalFiles        int      `json:"total_files"`
	IntactFiles       int      `json:"intact_files"`
	CorruptedFiles    int      `json:"corrupted_files"`
	InaccessibleFiles int      `json:"inaccessible_files"`
	UnknownFiles      int      `json:"unknown_files"`
	EmptyFiles        int      `json:"empty_files"`
	SpreadsheetFiles  int      `json:"spreadsheet_files"`
	EnhancedChecks    bool     `json:"enhanced_checks"`
	DurationSeconds   float64  `json:"duration_seconds"`
}

// Aggregator serializes summary updates from the worker pool.
type Aggregator struct {
	mu      sync.Mutex
	summary Summary
	started time.Time
}

func NewAggregator(inputDirs []string) *Aggregator {
	now := time.Now().UTC()
	return &Aggregator{
		summary: Summary{
			ScanDate:  now.Format(time.RFC3339),
			InputDirs: append([]string(nil), inputDirs...),
		},
		started: now,
	}
}

// Add counts one classified record.
func (a *Aggregator) Add(rec *FileRecord, spreadsheet bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.summary.TotalFiles++
	switch rec.Status {
	case StatusIntact:
		a.summary.IntactFiles++
	case StatusCorrupted:
		a.summary.CorruptedFiles++
	case StatusInaccessible:
		a.summary.InaccessibleFiles++
	default:
		a.summary.UnknownFiles++
	}
	if rec.IsAccessible && rec.IsReadable && rec.Size == 0 {
		a.summary.EmptyFiles++
	}
	if spreadsheet {
		a.summary.SpreadsheetFiles++
	}
}

func (a *Aggregator) SetEnhanced(enabled bool) {
	a.mu.Lock()
	a.summary.EnhancedChecks = enabled
	a.mu.Unlock()
}

// Snapshot returns a copy of the current counters with the elapsed
// duration filled in.
func (a *Aggregator) Snapshot() Summary {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.summary
	s.InputDirs = append([]string(nil), a.summary.InputDirs...)
	s.DurationSeconds = time.Since(a.started).Seconds()
	return s
}
