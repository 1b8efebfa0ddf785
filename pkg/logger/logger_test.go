package logger_test

import (
	"context"
	"testing"

	"emailfinder/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		level       string
		debug       bool
	}{
		{name: "development defaults to debug", environment: logger.DevelopmentEnvironment, debug: true},
		{name: "production defaults to info", environment: logger.ProductionEnvironment, debug: false},
		{name: "level override", environment: logger.DevelopmentEnvironment, level: "warn", debug: false},
		{name: "invalid level is ignored", environment: logger.ProductionEnvironment, level: "loud", debug: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotPanics(t, func() { logger.Setup(tt.environment, tt.level) })
			require.Equal(t, tt.debug, logger.IsDebug(context.Background()))
		})
	}
}

func TestGetFallsBackToDefault(t *testing.T) {
	logger.Setup(logger.DevelopmentEnvironment, "")
	require.NotNil(t, logger.Get(context.Background()))

	custom := zap.NewExample()
	ctx := logger.WithLogger(context.Background(), custom)
	require.Equal(t, custom, logger.Get(ctx))
}

func TestWithFieldsAddsFieldsToEveryEntry(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))
	ctx = logger.WithFields(ctx, zap.String("domain", "example.com"))

	logger.Info(ctx, "generation started", zap.Int("emails", 3))
	logger.Warn(ctx, "lookup slow")

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "example.com", entries[0].ContextMap()["domain"])
	require.EqualValues(t, 3, entries[0].ContextMap()["emails"])
	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.Equal(t, "example.com", entries[1].ContextMap()["domain"])
}

func TestLoggingFunctionsDoNotPanic(t *testing.T) {
	logger.Setup(logger.DevelopmentEnvironment, "")
	ctx := context.Background()

	require.NotPanics(t, func() {
		logger.Debug(ctx, "debug", zap.String("k", "v"))
		logger.Info(ctx, "info")
		logger.Warn(ctx, "warn")
		logger.Error(ctx, "error")
		logger.Sync()
	})
}
