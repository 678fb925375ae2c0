package validator

import (
	"encoding/json"
	"fmt"
)

type jsonValidator struct {
	maxBytes int64
}

func (jsonValidator) Name() string { return "json" }

func (v jsonValidator) Validate(path string) Result {
	result := newResult("json")

	raw, err := readContent(path, v.maxBytes)
	if err != nil {
		result.Err = err.Error()
		return result
	}

	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		result.Err = fmt.Sprintf("invalid JSON: %v", err)
		return result
	}

	result.Details["format_valid"] = true
	result.Details["json_valid"] = true
	result.Details["data_type"] = jsonTypeName(data)

	switch value := data.(type) {
	case map[string]interface{}:
		result.Details["keys_count"] = len(value)
	case []interface{}:
		result.Details["items_count"] = len(value)
	}
	return result
}

func jsonTypeName(data interface{}) string {
	switch data.(type) {
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	case nil:
		return "null"
	default:
		return "unknown"
	}
}
