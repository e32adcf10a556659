package llm

import (
	"errors"
	"fmt"
)

// ErrNoClient is returned when an AI path is invoked without a configured client
var ErrNoClient = errors.New("no AI client configured")

// ProviderError carries a provider-surfaced failure message
type ProviderError struct {
	Provider Provider
	Message  string
	Cause    error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// TimeoutError is returned when a generation exceeds its deadline
type TimeoutError struct {
	Message string
	Cause   error
}

func (e *TimeoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("AI call timed out: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("AI call timed out: %s", e.Message)
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}
