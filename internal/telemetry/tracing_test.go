package telemetry

import (
	"context"
	"errors"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestLogExporter(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(NewLogExporter(logger)))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	tracer := tp.Tracer("test")

	_, span := tracer.Start(context.Background(), "board.promote")
	span.SetAttributes(attribute.Int64("task_id", 7))
	span.End()

	_, failed := tracer.Start(context.Background(), "board.demote")
	failed.RecordError(errors.New("boom"))
	failed.SetStatus(codes.Error, "boom")
	failed.End()

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "span", entries[0].Message)
	assert.Equal(t, "board.promote", entries[0].Data["span"])
	assert.Equal(t, int64(7), entries[0].Data["task_id"])
	assert.Equal(t, "span failed", entries[1].Message)
	assert.Equal(t, "boom", entries[1].Data["status"])
}

func TestSetup_InstallsGlobalProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	logger, _ := test.NewNullLogger()
	shutdown := Setup(logger)
	_, isSDK := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, isSDK)
	assert.NoError(t, shutdown(context.Background()))
}
