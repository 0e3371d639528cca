package common

import (
	"errors"
	"net/http"
)

// ErrorResponse API error body
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"` // debug mode only
}

// CustomError carries a stable code, a user-facing message and an HTTP status
type CustomError struct {
	Code    string
	Message string
	Err     error
	Status  int
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is matches any CustomError with the same code
func (e *CustomError) Is(target error) bool {
	var t *CustomError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Wrap returns a copy of e carrying err as its cause
func (e *CustomError) Wrap(err error) *CustomError {
	return &CustomError{
		Code:    e.Code,
		Message: e.Message,
		Status:  e.Status,
		Err:     err,
	}
}

// NewError creates a CustomError
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ValidationError rejected request input
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError creates a ValidationError
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError reports whether err is a ValidationError
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// StatusClientClosedRequest the client went away before the response was written
const StatusClientClosedRequest = 499

const (
	// 4xx
	ErrCodeInvalidRequest  = "INVALID_REQUEST"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeSuperseded      = "SUPERSEDED"
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS"
	ErrCodeClientClosed    = "CLIENT_CLOSED_REQUEST"

	// 5xx
	ErrCodeInternalError          = "INTERNAL_ERROR"
	ErrCodeInvalidAIResponse      = "INVALID_AI_RESPONSE"
	ErrCodeAssetGenerationFailed  = "ASSET_GENERATION_FAILED"
	ErrCodeInvalidTranslation     = "INVALID_TRANSLATION"
	ErrCodeServiceUnavailable     = "SERVICE_UNAVAILABLE"
	ErrCodeGatewayTimeout         = "REQUEST_TIMEOUT"
	ErrCodeFavoritesPersistFailed = "FAVORITES_PERSIST_FAILED"
)

var (
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "Invalid request.", http.StatusBadRequest, nil)
	ErrEmptyQuery      = NewError(ErrCodeInvalidRequest, "Please enter a dish or category to search for.", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "Resource not found.", http.StatusNotFound, nil)
	ErrSuperseded      = NewError(ErrCodeSuperseded, "This search was replaced by a newer one.", http.StatusConflict, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "Too many requests.", http.StatusTooManyRequests, nil)
	ErrClientClosed    = NewError(ErrCodeClientClosed, "Request canceled by the client.", StatusClientClosedRequest, nil)

	ErrInternalError  = NewError(ErrCodeInternalError, "An unexpected error occurred.", http.StatusInternalServerError, nil)
	ErrGatewayTimeout = NewError(ErrCodeGatewayTimeout, "Request timeout.", http.StatusGatewayTimeout, nil)

	// recipe pipeline
	ErrInvalidAIResponse     = NewError(ErrCodeInvalidAIResponse, "The AI returned an invalid data structure.", http.StatusBadGateway, nil)
	ErrAssetGenerationFailed = NewError(ErrCodeAssetGenerationFailed, "Successfully fetched recipe details, but failed to generate any images. Please try again.", http.StatusBadGateway, nil)
	ErrInvalidTranslation    = NewError(ErrCodeInvalidTranslation, "The AI returned an invalid translation format.", http.StatusBadGateway, nil)
	ErrAIServiceUnavailable  = NewError(ErrCodeServiceUnavailable, "Failed to fetch recipe details. The service might be temporarily unavailable.", http.StatusServiceUnavailable, nil)
	ErrTranslationFailed     = NewError(ErrCodeServiceUnavailable, "Failed to translate the recipe. The service might be temporarily unavailable.", http.StatusServiceUnavailable, nil)

	ErrFavoritesPersistFailed = NewError(ErrCodeFavoritesPersistFailed, "Failed to save favorites.", http.StatusInternalServerError, nil)
)

// AsCustomError maps any error onto a CustomError, falling back to ErrInternalError
func AsCustomError(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}
	if IsValidationError(err) {
		return ErrInvalidRequest.Wrap(err)
	}
	return ErrInternalError.Wrap(err)
}
