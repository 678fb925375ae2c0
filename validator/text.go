package validator

import "unicode/utf8"

type textValidator struct {
	maxBytes int64
}

func (textValidator) Name() string { return "text" }

func (v textValidator) Validate(path string) Result {
	result := newResult("text")
	result.Details["lines_count"] = 0
	result.Details["encoding"] = "unknown"

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
	result.Details["char_count"] = utf8.RuneCountInString(text)
	return result
}
