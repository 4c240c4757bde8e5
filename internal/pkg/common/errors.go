package common

import (
	"errors"
	"net/http"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CustomError carries an error code and the HTTP status it maps to.
type CustomError struct {
	Code    string // machine-readable error code
	Message string // user-facing message (pt-BR)
	Err     error  // wrapped cause, if any
	Status  int    // HTTP status code
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError creates a new CustomError.
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Error codes used across the service.
const (
	ErrCodeValidation     = "VALIDATION_ERROR" // 400
	ErrCodeNotFound       = "NOT_FOUND"        // 404
	ErrCodeContentMissing = "CONTENT_MISSING"  // 404
	ErrCodeUpstream       = "UPSTREAM_ERROR"   // 500
	ErrCodeSynthesis      = "SYNTHESIS_ERROR"  // 500
	ErrCodeInternal       = "INTERNAL_ERROR"   // 500
)

// NewValidationError marks bad or empty user input.
func NewValidationError(message string) *CustomError {
	return NewError(ErrCodeValidation, message, http.StatusBadRequest, nil)
}

// NewNotFoundError marks an unknown or expired recipe id.
func NewNotFoundError(message string) *CustomError {
	return NewError(ErrCodeNotFound, message, http.StatusNotFound, nil)
}

// NewContentMissingError marks a recipe without usable instruction text.
func NewContentMissingError(message string) *CustomError {
	return NewError(ErrCodeContentMissing, message, http.StatusNotFound, nil)
}

// NewUpstreamError marks a failed external API call.
func NewUpstreamError(message string, err error) *CustomError {
	return NewError(ErrCodeUpstream, message, http.StatusInternalServerError, err)
}

// NewSynthesisError marks a failed audio synthesis.
func NewSynthesisError(message string, err error) *CustomError {
	return NewError(ErrCodeSynthesis, message, http.StatusInternalServerError, err)
}

// IsValidationError reports whether err carries the validation code.
func IsValidationError(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

// IsNotFoundError reports whether err carries the not-found code.
func IsNotFoundError(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsContentMissingError reports whether err carries the content-missing code.
func IsContentMissingError(err error) bool {
	return hasCode(err, ErrCodeContentMissing)
}

// IsUpstreamError reports whether err carries the upstream code.
func IsUpstreamError(err error) bool {
	return hasCode(err, ErrCodeUpstream)
}

func hasCode(err error, code string) bool {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// HTTPStatus resolves the status to report for err. Unknown error types map
// to 500.
func HTTPStatus(err error) int {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Status
	}
	return http.StatusInternalServerError
}

// UserMessage resolves the user-facing message for err. Unknown error types
// get a generic internal message so raw causes never leak to clients.
func UserMessage(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return "Erro interno do servidor."
}
