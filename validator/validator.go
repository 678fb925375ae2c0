// Package validator holds the per-format structural checks. Each
// validator reads a file and reports whether its content looks like
// the format its extension claims.
//
// Validators distinguish two signals. A soft signal (format_valid
// false, no error) means the bytes do not conform to the format. A
// hard signal (Err set) means an operation that should have succeeded
// failed unexpectedly; only the hard signal drives a CORRUPTED
// classification downstream.
package validator

// Result is the outcome of a single format validation.
type Result struct {
	// Details carries format-specific fields, including format_valid.
	Details map[string]interface{}

	// Err marks an unexpected failure. It is the sole signal the
	// classification decision treats as corruption.
	Err string

	// Warning and Suggestion are informational and never change the
	// final status.
	Warning    string
	Suggestion string
}

func newResult(format string) Result {
	return Result{Details: map[string]interface{}{
		"format":       format,
		"format_valid": false,
	}}
}

// FormatValid reports the soft conformance signal.
func (r Result) FormatValid() bool {
	valid, _ := r.Details["format_valid"].(bool)
	return valid
}

// Fields flattens the result into one map for report writers, merging
// error/warning/suggestion alongside the format details.
func (r Result) Fields() map[string]interface{} {
	fields := make(map[string]interface{}, len(r.Details)+3)
	for k, v := range r.Details {
		fields[k] = v
	}
	if r.Err != "" {
		fields["error"] = r.Err
	}
	if r.Warning != "" {
		fields["warning"] = r.Warning
	}
	if r.Suggestion != "" {
		fields["suggestion"] = r.Suggestion
	}
	return fields
}

// Validator checks one file against the structural signature of a
// single format.
type Validator interface {
	Name() string
	Validate(path string) Result
}
