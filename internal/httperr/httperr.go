package httperr

import (
	"fmt"
	"net/http"
)

// Error is a typed failure carrying the HTTP status code it maps to.
// Orchestrator stages return these instead of panicking, and the handlers
// have a single respond point that turns them into a JSON error body.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Kind returns the taxonomy name used as the error class detail in logs.
func (e *Error) Kind() string {
	switch e.Code {
	case http.StatusBadRequest:
		return "BadRequestError"
	case http.StatusUnauthorized:
		return "UnauthorizedError"
	case http.StatusNotFound:
		return "NotFoundError"
	default:
		return "InternalServerError"
	}
}

func BadRequest(format string, args ...any) *Error {
	return &Error{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized() *Error {
	return &Error{Code: http.StatusUnauthorized, Message: "You are not authorized"}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Code: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

func Internal(format string, args ...any) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: fmt.Sprintf(format, args...)}
}
