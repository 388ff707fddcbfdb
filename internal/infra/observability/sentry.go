// Package observability wires error reporting into the process lifecycle.
package observability

import (
	"context"
	"log/slog"
	"time"

	"civic/config"
	"civic/internal/errors"

	"github.com/getsentry/sentry-go"
	"go.uber.org/fx"
)

const flushTimeout = 2 * time.Second

// Reporter forwards unexpected errors to Sentry. It is a no-op when no DSN is configured.
type Reporter struct {
	enabled bool
}

// Params holds dependencies for the Sentry reporter, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewReporter initialises the Sentry SDK when sentry.dsn is set and flushes it on shutdown.
func NewReporter(params Params) (*Reporter, error) {
	cfg := params.Config.Sentry
	if cfg == nil || cfg.DSN == "" {
		params.Logger.Info("Sentry DSN not configured, error reporting disabled")

		return &Reporter{}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      params.Config.Env.Env,
		ServerName:       params.Config.Env.ServiceName,
		AttachStacktrace: true,
		TracesSampleRate: cfg.TracesSampleRate,
	})
	if err != nil {
		return nil, errors.Wrap(err, "init sentry")
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			sentry.Flush(flushTimeout)

			return nil
		},
	})

	return &Reporter{enabled: true}, nil
}

// Enabled reports whether errors are forwarded.
func (r *Reporter) Enabled() bool {
	return r != nil && r.enabled
}

// CaptureError reports err with the request metadata attached as tags.
func (r *Reporter) CaptureError(err error, tags map[string]string) {
	if !r.Enabled() || err == nil {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		sentry.CaptureException(err)
	})
}
