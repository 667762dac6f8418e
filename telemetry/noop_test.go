package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clarion-insurance/claims-orchestrator/telemetry"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
)

func TestNoopLogger(_ *testing.T) {
	ctx := context.Background()
	logger := telemetry.NewNoopLogger()

	logger.Debug(ctx, "debug message", "key", "value")
	logger.Info(ctx, "info message", "key", "value")
	logger.Warn(ctx, "warn message", "key", "value")
	logger.Error(ctx, "error message", "key", "value")
}

func TestNoopMetrics(_ *testing.T) {
	metrics := telemetry.NewNoopMetrics()

	metrics.IncCounter("test.counter", 1.0, "env", "test")
	metrics.RecordTimer("test.timer", 100*time.Millisecond, "env", "test")
	metrics.RecordGauge("test.gauge", 42.0, "env", "test")
}

func TestNoopTracer(t *testing.T) {
	ctx := context.Background()
	tracer := telemetry.NewNoopTracer()

	newCtx, span := tracer.Start(ctx, "test.operation")
	require.Equal(t, ctx, newCtx)
	require.NotNil(t, span)

	span.AddEvent("test.event", "key", "value")
	span.SetStatus(codes.Ok, "completed")
	span.RecordError(errors.New("test error"))
	span.End()

	span2 := tracer.Span(ctx)
	require.NotNil(t, span2)
}

func TestNoopImplementsInterfaces(_ *testing.T) {
	var _ telemetry.Logger = telemetry.NewNoopLogger()
	var _ telemetry.Metrics = telemetry.NewNoopMetrics()
	var _ telemetry.Tracer = telemetry.NewNoopTracer()
}
