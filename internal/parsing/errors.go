package parsing

import "fmt"

// APICallError reports a failure before a model response was received.
// Step is "client", "prompt" or "generate".
type APICallError struct {
	Step    string
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	msg := fmt.Sprintf("AI parse %s step failed: %s", e.Step, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *APICallError) Unwrap() error { return e.Cause }

// ParseError reports a model response that is not JSON or breaks the named schema
type ParseError struct {
	Schema  string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	msg := "unusable AI response: " + e.Message
	if e.Schema != "" {
		msg += " (schema " + e.Schema + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Cause }

// ValidationError reports a decoded record rejected during post-processing
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "AI record rejected: " + e.Message
	}
	return fmt.Sprintf("AI record rejected at %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Cause }
