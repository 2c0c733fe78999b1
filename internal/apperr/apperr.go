// Package apperr centralizes the mapping from store/infra errors to HTTP
// responses, keeping handlers free of repeated status bookkeeping.
package apperr

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Error carries an HTTP status alongside a client-safe message.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound creates a 404 error for an absent entity.
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// InvalidInput creates a 400 error for malformed input or a business-rule
// violation such as self-partnering.
func InvalidInput(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Unauthenticated creates a 401 error.
func Unauthenticated(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// Conflict creates a 409 error, e.g. a duplicate username.
func Conflict(msg string) *Error {
	return &Error{Status: http.StatusConflict, Message: msg}
}

// Upstream creates a 500 error for a catalog gateway failure.
func Upstream(msg string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: msg, Err: err}
}

// Map converts an arbitrary error into an *Error. Store-level record
// misses map to 404 rather than the reference behavior's generic 400.
func Map(err error) *Error {
	var appErr *Error
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Status: http.StatusNotFound, Message: "record not found", Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Status: http.StatusGatewayTimeout, Message: "request timed out", Err: err}
	case errors.Is(err, context.Canceled):
		return &Error{Status: 499, Message: "request was canceled", Err: err}
	default:
		return &Error{Status: http.StatusInternalServerError, Message: "internal error", Err: err}
	}
}

// Respond writes err as a JSON error body with the mapped status.
func Respond(c *gin.Context, err error) {
	mapped := Map(err)
	c.JSON(mapped.Status, gin.H{"error": mapped.Message})
}
