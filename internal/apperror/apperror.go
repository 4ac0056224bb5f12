// Package apperror carries the service error taxonomy. Handlers classify
// store failures through FromStore and render the result in the response
// envelope; nothing in this layer retries.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Error is an HTTP-mappable service error
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// Validation builds a 400 validation error
func Validation(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds a 400 conflict error (duplicate slot, duplicate slug)
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Forbidden builds a 403 authorization error
func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusForbidden, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a 404 error. Tenant-scope mismatches are reported as
// absence, never as a permission hint.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// Internal builds a 500 error with the underlying message surfaced
func Internal(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: fmt.Sprintf(format, args...)}
}

// FromStore classifies a store failure for the given resource name
func FromStore(err error, resource string) *Error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound("%s not found", resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict("%s already exists", resource)
	default:
		return Internal("%s", err.Error())
	}
}
