package observes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpanRecordsError(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := StartSpan(context.Background(), LayerRepo, "jobs.find")
	EndSpan(span, errors.New("boom"))

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "repository.jobs.find", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestNewSentryWithoutDSN(t *testing.T) {
	flush, err := NewSentry(&SentryOptions{})
	require.NoError(t, err)
	flush()
}

func TestNewTracerNilOption(t *testing.T) {
	_, err := NewTracer(nil)
	assert.Error(t, err)
}

func TestLayerString(t *testing.T) {
	assert.Equal(t, "service", LayerService.String())
	assert.Equal(t, "unknown", Layer(42).String())
}
