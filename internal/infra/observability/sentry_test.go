package observability

import (
	"log/slog"
	"testing"

	"civic/config"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestNewReporter_DisabledWithoutDSN(t *testing.T) {
	reporter, err := NewReporter(Params{Lc: fxtest.NewLifecycle(t), Config: &config.Config{}, Logger: slog.New(slog.DiscardHandler)})
	require.NoError(t, err)
	assert.False(t, reporter.Enabled())

	// Must not panic while disabled.
	reporter.CaptureError(errors.New("boom"), map[string]string{"path": "/"})
}

func TestNewReporter_InvalidDSN(t *testing.T) {
	cfg := &config.Config{Sentry: &config.SentryConfig{DSN: "not a dsn"}}

	_, err := NewReporter(Params{Lc: fxtest.NewLifecycle(t), Config: cfg, Logger: slog.New(slog.DiscardHandler)})
	assert.Error(t, err)
}

func TestReporter_NilIsDisabled(t *testing.T) {
	var reporter *Reporter
	assert.False(t, reporter.Enabled())
	reporter.CaptureError(errors.New("boom"), nil)
}
