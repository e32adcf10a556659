// Package experience infers achievement tags and metrics and normalizes career records.
package experience

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// LoadError reports a career record file that could not be read or decoded
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("load career record: %s: %v", msg, e.Cause)
	}
	return "load career record: " + msg
}

func (e *LoadError) Unwrap() error { return e.Cause }

// NormalizationError reports a record that failed structural validation.
// Fields holds the failing field namespaces, e.g. "CareerRecord.Profile.Email".
type NormalizationError struct {
	Message string
	Fields  []string
	Cause   error
}

func newNormalizationError(message string, cause error) *NormalizationError {
	e := &NormalizationError{Message: message, Cause: cause}
	var verrs validator.ValidationErrors
	if errors.As(cause, &verrs) {
		for _, fe := range verrs {
			e.Fields = append(e.Fields, fe.Namespace())
		}
	}
	return e
}

func (e *NormalizationError) Error() string {
	msg := "invalid career record: " + e.Message
	if len(e.Fields) > 0 {
		return msg + " [" + strings.Join(e.Fields, ", ") + "]"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *NormalizationError) Unwrap() error { return e.Cause }
