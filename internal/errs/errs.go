// Package errs defines the classified, user-facing failures returned by the
// HTTP handlers. Any error that is not an *Error is treated as internal.
package errs

import (
	"errors"
	"net/http"
)

// InternalMessage is the only text clients see for unclassified failures
const InternalMessage = "Internal Server Error"

// Error is a failure with a well-defined meaning for the caller
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// New creates an Error with the given message and HTTP status
func New(message string, status int) *Error {
	return &Error{Message: message, Status: status}
}

func (e *Error) Error() string {
	return e.Message
}

// BadRequest reports missing or malformed input (400)
func BadRequest(message string) *Error {
	return New(message, http.StatusBadRequest)
}

// NotFound reports an operation that matched no record (404)
func NotFound(message string) *Error {
	return New(message, http.StatusNotFound)
}

// Conflict reports a write rejected by a uniqueness constraint (409)
func Conflict(message string) *Error {
	return New(message, http.StatusConflict)
}

// Internal is the generic 500 shown for store or unexpected failures
func Internal() *Error {
	return New(InternalMessage, http.StatusInternalServerError)
}

// As extracts an *Error from err's chain
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
