package validator

import "strings"

var sqlKeywords = []string{"SELECT", "INSERT", "UPDATE", "DELETE", "CREATE", "DROP"}

type sqlValidator struct {
	maxBytes int64
}

func (sqlValidator) Name() string { return "sql" }

// Validate records a coarse statement count: occurrences of the core
// DML/DDL keywords, case-insensitive. Any readable text passes.
func (v sqlValidator) Validate(path string) Result {
	result := newResult("sql")
	result.Details["statements_count"] = 0

	raw, err := readContent(path, v.maxBytes)
	if err != nil {
		result.Err = err.Error()
		return result
	}

	text, encodingName, ok := decodeText(raw)
	if !ok {
		return result
	}

	upper := strings.ToUpper(text)
	statements := 0
	for _, keyword := range sqlKeywords {
		statements += strings.Count(upper, keyword)
	}

	result.Details["format_valid"] = true
	result.Details["lines_count"] = countLines(text)
	result.Details["statements_count"] = statements
	result.Details["encoding"] = encodingName
	return result
}
