package validator

import (
	"go/parser"
	"go/scanner"
	"go/token"
	"path/filepath"
	"strings"
)

// sourceValidator checks source-code files. Go files get a real syntax
// check through go/parser; a syntax error is recorded but leaves
// format_valid true, since the file is readable text even when it is
// not valid code.
// Python files have no native parser here and get the readable-text
// tier only.
type sourceValidator struct {
	maxBytes int64
}

func (sourceValidator) Name() string { return "source" }

func (v sourceValidator) Validate(path string) Result {
	result := newResult("source")
	result.Details["language"] = sourceLanguage(path)

	raw, err := readContent(path, v.maxBytes)
	if err != nil {
		result.Err = err.Error()
		return result
	}

	text, encodingName, ok := decodeText(raw)
	if !ok {
		return result
	}

	result.Details["format_valid"] = true
	result.Details["lines_count"] = countLines(text)
	result.Details["encoding"] = encodingName

	if strings.EqualFold(filepath.Ext(path), ".go") {
		v.checkGoSyntax(path, raw, result.Details)
	} else {
		result.Details["syntax_checked"] = false
	}
	return result
}

func (sourceValidator) checkGoSyntax(path string, src []byte, details map[string]interface{}) {
	details["syntax_checked"] = true
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, path, src, parser.AllErrors)
	if err == nil {
		details["syntax_valid"] = true
		return
	}
	details["syntax_valid"] = false
	if list, ok := err.(scanner.ErrorList); ok && len(list) > 0 {
		details["syntax_error"] = list[0].Error()
		return
	}
	details["syntax_error"] = err.Error()
}

func sourceLanguage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return "go"
	case ".py":
		return "python"
	default:
		return "unknown"
	}
}
