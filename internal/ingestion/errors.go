package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTextLayer means the document has pages but none carried extractable text.
	ErrNoTextLayer = errors.New("no extractable text layer, the file may be a scanned image")
	// ErrNoPages means the document parsed but contains zero pages.
	ErrNoPages = errors.New("document contains no pages")
	// ErrUnsupportedType means the sniffed content type has no extractor.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrEmptyFile means no bytes were supplied.
	ErrEmptyFile = errors.New("file is empty")
	// ErrNoText means a non-PDF document decoded to blank text.
	ErrNoText = errors.New("document contains no text")
)

// ExtractionError represents a failure turning a binary file into text
type ExtractionError struct {
	Filename string
	Message  string
	Cause    error
}

func (e *ExtractionError) Error() string {
	name := e.Filename
	if name == "" {
		name = "upload"
	}
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed for %s: %s: %v", name, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed for %s: %s", name, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
