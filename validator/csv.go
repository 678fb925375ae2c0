package validator

import (
	"encoding/csv"
	"strings"
)

const separatorSampleSize = 1024

var candidateSeparators = []rune{',', ';', '\t', '|'}

type csvValidator struct {
	maxBytes int64
}

func (csvValidator) Name() string { return "csv" }

func (v csvValidator) Validate(path string) Result {
	result := newResult("csv")
	result.Details["rows_count"] = 0
	result.Details["columns_count"] = 0
	result.Details["encoding"] = "unknown"

	raw, err := readContent(path, v.maxBytes)
	if err != nil {
		result.Err = err.Error()
		return result
	}

	text, encodingName, ok := decodeText(raw)
	if !ok {
		// Undecodable content is a soft failure: format_valid stays
		// false without an error.
		return result
	}

	separator := detectSeparator(text)
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = separator
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		// Content decoded but did not parse as delimited records.
		return result
	}

	result.Details["format_valid"] = true
	result.Details["rows_count"] = len(records)
	if len(records) > 0 {
		result.Details["columns_count"] = len(records[0])
	}
	result.Details["encoding"] = encodingName
	result.Details["separator"] = string(separator)
	return result
}

// detectSeparator compares occurrence counts of the candidate
// separators in a leading sample; comma wins ties.
func detectSeparator(text string) rune {
	sample := text
	if len(sample) > separatorSampleSize {
		sample = sample[:separatorSampleSize]
	}
	separator := ','
	best := strings.Count(sample, ",")
	for _, candidate := range candidateSeparators[1:] {
		if count := strings.Count(sample, string(candidate)); count > best {
			separator = candidate
			best = count
		}
	}
	return separator
}
