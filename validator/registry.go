package validator

import "strings"

// Config carries the per-scan knobs the registry needs.
type Config struct {
	// AdvancedSpreadsheet reports whether the rich workbook tier may
	// be used. Consulted lazily, on each spreadsheet file. A nil
	// function means basic tier only.
	AdvancedSpreadsheet func() bool

	// MaxBytes caps how much content a validator may read. Zero means
	// no cap.
	MaxBytes int64
}

// Registry maps lowercase dot-prefixed extensions to validators.
// Unregistered extensions fall back to a pass-through validator whose
// result never drives a CORRUPTED classification.
type Registry struct {
	validators map[string]Validator
	fallback   Validator
}

// NewRegistry builds the per-scan validator table. Registries are
// cheap and scoped to one scan invocation.
func NewRegistry(cfg Config) *Registry {
	spreadsheet := &spreadsheetValidator{advanced: cfg.AdvancedSpreadsheet}
	text := textValidator{maxBytes: cfg.MaxBytes}
	return &Registry{
		validators: map[string]Validator{
			".csv":  csvValidator{maxBytes: cfg.MaxBytes},
			".json": jsonValidator{maxBytes: cfg.MaxBytes},
			".xlsx": spreadsheet,
			".xls":  spreadsheet,
			".pdf":  pdfValidator{},
			".txt":  text,
			".py":   sourceValidator{maxBytes: cfg.MaxBytes},
			".go":   sourceValidator{maxBytes: cfg.MaxBytes},
			".sql":  sqlValidator{maxBytes: cfg.MaxBytes},
			".xml":  xmlValidator{},
			".zip":  zipValidator{},
			".rar":  rarValidator{},
		},
		fallback: unknownValidator{},
	}
}

// Lookup returns the validator for an extension, falling back to the
// pass-through validator for anything unrecognized.
func (r *Registry) Lookup(ext string) Validator {
	if v, ok := r.validators[normalizeExt(ext)]; ok {
		return v
	}
	return r.fallback
}

// Recognized reports whether the extension has a registered validator.
func (r *Registry) Recognized(ext string) bool {
	_, ok := r.validators[normalizeExt(ext)]
	return ok
}

// IsSpreadsheetExt reports whether the extension belongs to the
// enhancement-eligible spreadsheet formats.
func IsSpreadsheetExt(ext string) bool {
	switch normalizeExt(ext) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

type unknownValidator struct{}

func (unknownValidator) Name() string { return "unknown" }

func (unknownValidator) Validate(path string) Result {
	return Result{Details: map[string]interface{}{
		"format":  "unknown",
		"message": "unrecognized file type",
	}}
}
