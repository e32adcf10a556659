package rewriting

import "fmt"

// APICallError reports a rewrite that failed before a model response arrived.
// Step is "input", "prompt" or "generate".
type APICallError struct {
	Step    string
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("rewrite %s: %s", e.Step, e.Message)
	}
	return fmt.Sprintf("rewrite %s: %s: %v", e.Step, e.Message, e.Cause)
}

func (e *APICallError) Unwrap() error { return e.Cause }

// ParseError reports a model response that could not be merged. Requested is the number
// of achievements sent; the record is left untouched.
type ParseError struct {
	Requested int
	Message   string
	Cause     error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("unusable rewrite for %d achievement(s): %s", e.Requested, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Cause }
