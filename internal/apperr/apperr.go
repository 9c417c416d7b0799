// Package apperr defines the domain error type surfaced to API clients.
// Every business-rule violation is an *Error carrying a machine-readable
// code; anything else renders as a generic 500.
package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Status  int            `json:"-"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

func New(status int, code, message string) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

func (e *Error) WithDetails(details map[string]any) *Error {
	return &Error{Code: e.Code, Message: e.Message, Status: e.Status, Details: details}
}

func NotFound(code, message string) *Error  { return New(http.StatusNotFound, code, message) }
func Conflict(code, message string) *Error  { return New(http.StatusConflict, code, message) }
func Forbidden(code, message string) *Error { return New(http.StatusForbidden, code, message) }
func BadRequest(code, message string) *Error {
	return New(http.StatusBadRequest, code, message)
}
func Unauthorized(code, message string) *Error {
	return New(http.StatusUnauthorized, code, message)
}

// Respond writes err as the JSON error envelope. Domain errors keep their
// status and code; everything else is an opaque 500.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{"error": appErr})
		return
	}
	zap.L().Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": &Error{Code: "INTERNAL", Message: "internal server error"},
	})
}

// BadJSON wraps gin binding failures in the envelope.
func BadJSON(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": &Error{Code: "INVALID_REQUEST", Message: err.Error()},
	})
}
