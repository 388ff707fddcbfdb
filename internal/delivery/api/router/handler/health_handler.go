package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"civic/internal/delivery/api/response"
	deliverycontext "civic/internal/delivery/context"
	"civic/internal/domain/repository"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandlerParams holds dependencies for HealthHandler, injected by Fx.
type HealthHandlerParams struct {
	fx.In

	Checker repository.HealthChecker
	Logger  *slog.Logger
}

// HealthHandler reports whether the service can reach its database.
type HealthHandler struct {
	checker repository.HealthChecker
	logger  *slog.Logger
}

// NewHealthHandler is the constructor for HealthHandler.
func NewHealthHandler(params HealthHandlerParams) *HealthHandler {
	return &HealthHandler{
		checker: params.Checker,
		logger:  params.Logger,
	}
}

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status string `json:"status"`
}

// Check pings the database.
func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := h.checker.Ping(ctx); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, h.logger).WarnContext(ctx, "Health check failed", slog.Any("error", err))

		return response.Success(c, http.StatusServiceUnavailable, HealthStatus{Status: "unavailable"})
	}

	return response.Success(c, http.StatusOK, HealthStatus{Status: "ok"})
}
