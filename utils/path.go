package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// NormalizeDirs resolves each candidate to an absolute path and splits
// the list into usable directories and rejects. A candidate is usable
// when it exists and is a directory.
func NormalizeDirs(candidates []string) (valid []string, invalid []string) {
	seen := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			invalid = append(invalid, candidate)
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			invalid = append(invalid, candidate)
			continue
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		valid = append(valid, abs)
	}
	return valid, invalid
}

// IsPathWithin returns true if the given path is within any of the roots.
func IsPathWithin(path string, roots []string) bool {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		resolved = path
	}
	absPath, err := filepath.Abs(resolved)
	if err != nil {
		return false
	}
	for _, root := range roots {
		rResolved, err := filepath.EvalSymlinks(root)
		if err != nil {
			rResolved = root
		}
		absRoot, err := filepath.Abs(rResolved)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(absRoot, absPath)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
