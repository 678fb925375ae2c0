package utils

import (
	"path/filepath"
	"strings"
)

// ExtensionFilter restricts a scan to an extension allow-list. An
// empty filter includes everything.
type ExtensionFilter struct {
	allowed map[string]struct{}
}

// NewExtensionFilter builds a filter from extension names with or
// without the leading dot, case-insensitive.
func NewExtensionFilter(extensions []string) *ExtensionFilter {
	if len(extensions) == 0 {
		return &ExtensionFilter{}
	}
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = struct{}{}
	}
	return &ExtensionFilter{allowed: allowed}
}

func (f *ExtensionFilter) ShouldInclude(path string) bool {
	if f == nil || len(f.allowed) == 0 {
		return true
	}
	_, ok := f.allowed[strings.ToLower(filepath.Ext(path))]
	return ok
}
