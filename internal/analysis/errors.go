package analysis

import "fmt"

// TooShortError is returned when a job description is too short to analyze
type TooShortError struct {
	Length  int
	Minimum int
}

func (e *TooShortError) Error() string {
	return fmt.Sprintf("job description too short to analyze: %d characters (minimum %d)", e.Length, e.Minimum)
}

// AIAnalysisError represents a failed or rejected AI analysis
type AIAnalysisError struct {
	Message string
	Cause   error
}

func (e *AIAnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("AI analysis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("AI analysis failed: %s", e.Message)
}

func (e *AIAnalysisError) Unwrap() error {
	return e.Cause
}
