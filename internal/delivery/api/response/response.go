// Package response renders JSON bodies for the API.
package response

import (
	"net/http"

	domainerrors "civic/internal/domain/errors"
	"civic/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request. It carries no per-request
// data so that equal failures produce identical bytes; the request id travels in
// the X-Request-Id header.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Success renders data as the response body.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string) error {
	return c.JSON(statusCode, ErrorResponse{
		Error: message,
		Code:  errorCode,
	})
}

// BadRequest returns a 400 error
func BadRequest(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message)
}

// BindingError returns a binding error response
func BindingError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message)
}

// Unauthorized returns a 401 error
func Unauthorized(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusUnauthorized, errorCode, message)
}

// NotFound returns a 404 error
func NotFound(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusNotFound, errorCode, message)
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message)
}

// HandleAppError renders a 4xx domain error directly. Anything else, 5xx domain
// errors included, is returned to the centralized error handler so it is logged
// and reported.
func HandleAppError(c echo.Context, err error) error {
	appErr, ok := errors.AsTarget[domainerrors.AppError](err)
	if ok && appErr.HTTPCode() < http.StatusInternalServerError {
		return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message())
	}

	return errors.WithStack(err)
}
