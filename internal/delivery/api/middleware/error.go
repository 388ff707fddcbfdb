package middleware

import (
	"log/slog"
	"net/http"

	"civic/internal/delivery/api/response"
	deliverycontext "civic/internal/delivery/context"
	domainerrors "civic/internal/domain/errors"
	"civic/internal/errors"
	"civic/internal/infra/observability"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger   *slog.Logger
	reporter *observability.Reporter
}

// NewErrorMiddleware creates a new error handling middleware. reporter may be nil.
func NewErrorMiddleware(logger *slog.Logger, reporter *observability.Reporter) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger:   logger,
		reporter: reporter,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	// The logger middleware may already have rendered this error.
	if c.Response().Committed {
		return
	}

	if appErr, ok := errors.AsTarget[domainerrors.AppError](err); ok {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.report(c, err)
		}
		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message())

		return
	}

	if httpErr, ok := errors.AsTarget[*echo.HTTPError](err); ok {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		if httpErr.Code >= http.StatusInternalServerError {
			m.report(c, err)
		}
		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message)

		return
	}

	m.report(c, err)

	// Internal details never reach the client.
	_ = response.InternalServerError(c, domainerrors.ErrInternalError.ErrorCode(), domainerrors.ErrInternalError.Message())
}

func (m *ErrorMiddleware) report(c echo.Context, err error) {
	req := c.Request()
	ctx := req.Context()

	deliverycontext.GetLoggerOrDefault(ctx, m.logger).ErrorContext(ctx, "Unhandled error",
		slog.Any("error", err),
		slog.String("path", req.URL.Path),
		slog.String("method", req.Method),
	)

	m.reporter.CaptureError(err, map[string]string{
		"request_id": deliverycontext.GetRequestIDFromContext(ctx),
		"method":     req.Method,
		"route":      c.Path(),
	})
}
