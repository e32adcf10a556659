package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/cv-workbench/internal/analysis"
	"github.com/jonathan/cv-workbench/internal/ingestion"
	"github.com/jonathan/cv-workbench/internal/llm"
	"github.com/jonathan/cv-workbench/internal/rewriting"
	"github.com/jonathan/cv-workbench/internal/store"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates the request named an entity that does not exist
type ErrNotFound struct {
	Kind string
	ID   string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ErrAIUnavailable is returned by endpoints that need the AI collaborator when none is configured
var ErrAIUnavailable = errors.New("AI provider is not configured")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr      *ErrValidation
		notFoundErr        *ErrNotFound
		storeNotFound      *store.NotFoundError
		storeValidationErr *store.ValidationError
		tooShortErr        *analysis.TooShortError
		extractionErr      *ingestion.ExtractionError
		timeoutErr         *llm.TimeoutError
		providerErr        *llm.ProviderError
		rewriteParseErr    *rewriting.ParseError
		aiAnalysisErr      *analysis.AIAnalysisError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.As(err, &storeValidationErr), errors.As(err, &tooShortErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr), errors.As(err, &storeNotFound):
		return http.StatusNotFound
	case errors.Is(err, ingestion.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &extractionErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrAIUnavailable), errors.Is(err, llm.ErrNoClient):
		return http.StatusServiceUnavailable
	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout
	case errors.As(err, &providerErr), errors.As(err, &rewriteParseErr), errors.As(err, &aiAnalysisErr):
		// the model answered, but not with something usable
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
