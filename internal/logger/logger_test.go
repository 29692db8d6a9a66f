package logger_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"taskFileTracker/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	prev := logger.Logger
	t.Cleanup(func() { logger.Logger = prev })

	require.NoError(t, logger.Init(true, ""))
	assert.NotNil(t, logger.Logger)

	require.NoError(t, logger.Init(false, "warn"))
	assert.False(t, logger.Logger.Core().Enabled(zapcore.InfoLevel))

	assert.Error(t, logger.Init(false, "loud"))
	assert.NotNil(t, logger.Logger)
}

func TestHelpers(t *testing.T) {
	prev := logger.Logger
	t.Cleanup(func() { logger.Logger = prev })

	core, logs := observer.New(zapcore.DebugLevel)
	logger.Logger = zap.New(core)

	req := httptest.NewRequest("GET", "/tasks/?title=al", nil)
	logger.HttpRequestInfo(req, "HTTP_IN:")
	logger.Warn("warn")
	logger.Error("error", errors.New("boom"))
	logger.Log(zapcore.InfoLevel, "log")

	entries := logs.All()
	require.Len(t, entries, 4)

	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/tasks/", fields["path"])
	assert.Equal(t, "title=al", fields["query"])

	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "boom", entries[2].ContextMap()["error"])
}

func TestFromContext(t *testing.T) {
	prev := logger.Logger
	t.Cleanup(func() { logger.Logger = prev })

	core, logs := observer.New(zapcore.DebugLevel)
	logger.Logger = zap.New(core)

	assert.Same(t, logger.Logger, logger.FromContext(context.Background()))

	ctx := logger.IntoContext(context.Background(), logger.Logger.With(zap.String("request_id", "req-1")))
	logger.FromContext(ctx).Info("scoped")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
}
