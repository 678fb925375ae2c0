package validator

import (
	"encoding/xml"
	"io"
	"os"
)

type xmlValidator struct{}

func (xmlValidator) Name() string { return "xml" }

// Validate runs a full well-formedness pass over the document. A
// parse error is recorded as a non-fatal xml_error field: the file is
// recognized as XML-shaped but malformed. Only an open failure sets a
// hard error.
func (xmlValidator) Validate(path string) Result {
	result := newResult("xml")

	file, err := os.Open(path)
	if err != nil {
		result.Err = err.Error()
		return result
	}
	defer file.Close()

	decoder := xml.NewDecoder(file)
	rootTag := ""
	wellFormed := true
	var parseErr error

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			wellFormed = false
			parseErr = err
			break
		}
		if start, ok := token.(xml.StartElement); ok && rootTag == "" {
			rootTag = start.Name.Local
		}
	}

	result.Details["format_valid"] = true
	result.Details["well_formed"] = wellFormed
	if rootTag != "" {
		result.Details["root_tag"] = rootTag
	}
	if parseErr != nil {
		result.Details["xml_error"] = parseErr.Error()
	}
	return result
}
