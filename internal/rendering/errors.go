package rendering

import "fmt"

// TemplateError reports a LaTeX template that could not be read, parsed or executed.
// Template is the file path, or "cv" for the embedded template.
type TemplateError struct {
	Template string
	Message  string
	Cause    error
}

func (e *TemplateError) Error() string {
	msg := "template error"
	if e.Template != "" {
		msg += " (" + e.Template + ")"
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *TemplateError) Unwrap() error { return e.Cause }

// RenderError reports input the renderer refuses before a template runs
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause == nil {
		return "cannot render cv: " + e.Message
	}
	return fmt.Sprintf("cannot render cv: %s: %v", e.Message, e.Cause)
}

func (e *RenderError) Unwrap() error { return e.Cause }
