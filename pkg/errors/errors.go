package errors

import (
	"errors"
	"net/http"
)

// HTTPError is an error that knows the HTTP status and body it should be rendered with.
type HTTPError struct {
	Code    int
	Message string
	Details map[string]any
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError builds an HTTPError with no extra body fields.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

// WithDetails returns a copy of e carrying extra top-level body fields.
func (e *HTTPError) WithDetails(details map[string]any) *HTTPError {
	return &HTTPError{Code: e.Code, Message: e.Message, Details: details}
}

var (
	ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, "Internal server error")
	ErrUnauthorized        = NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	ErrForbidden           = NewHTTPError(http.StatusForbidden, "Forbidden")
)

// AsHTTPError unwraps err into an HTTPError, falling back to ErrInternalServerError.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return ErrInternalServerError
}
