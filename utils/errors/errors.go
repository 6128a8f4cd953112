package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// APIError represents a custom error type for API responses
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details string `json:"details,omitempty"`
}

// Error returns the error message
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches on Code so that wrapped copies of a sentinel still compare equal.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func NewAPIError(code, message string, status int, details ...string) *APIError {
	err := &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

var (
	ErrInvalidInput = NewAPIError("INVALID_INPUT", "Invalid request data", http.StatusBadRequest)
	ErrUnauthorized = NewAPIError("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	ErrNotFound     = NewAPIError("NOT_FOUND", "Resource not found", http.StatusNotFound)
	ErrInternal     = NewAPIError("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
	ErrConflict     = NewAPIError("CONFLICT", "Oops! That email or username is already taken.", http.StatusConflict)

	ErrValidation         = NewAPIError("VALIDATION_ERROR", "Invalid form data", http.StatusBadRequest)
	ErrInvalidCredentials = NewAPIError("INVALID_CREDENTIALS", "Invalid Credentials.", http.StatusUnauthorized)
	ErrStorage            = NewAPIError("STORAGE_ERROR", "Storage unavailable", http.StatusInternalServerError)
	ErrPermissionDenied   = NewAPIError("PERMISSION_DENIED", "Permission to access location was denied", http.StatusForbidden)
	ErrLocation           = NewAPIError("LOCATION_ERROR", "Error retrieving location", http.StatusServiceUnavailable)
	ErrInvalidState       = NewAPIError("INVALID_STATE", "Operation not allowed in the current session state", http.StatusConflict)
)

// Validation returns a form validation error carrying the message shown next to the form.
func Validation(message string) *APIError {
	return NewAPIError(ErrValidation.Code, message, ErrValidation.Status)
}

// Storage wraps a storage failure.
func Storage(err error, message string) *APIError {
	return NewAPIError(ErrStorage.Code, message, ErrStorage.Status, err.Error())
}

func Wrap(err error, code, message string, status int) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}
	return NewAPIError(code, message, status, err.Error())
}

// CodeOf returns the APIError code of err, or "" for foreign errors.
func CodeOf(err error) string {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}
