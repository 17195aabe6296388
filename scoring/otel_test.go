package scoring

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/archmap-ai/sdk/history"
)

func sampleRun() history.Run {
	return history.Run{
		ID:             "run-1",
		DiagramID:      "diag-1",
		Score:          87,
		ComponentCount: 11,
		CompletedAt:    time.Now().UTC(),
	}
}

func TestInitScoreMetrics_Success(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	e := newTestEngine(WithMeter(meter))

	require.NotNil(t, e.metrics)
	assert.NotNil(t, e.metrics.scoreHistogram)
	assert.NotNil(t, e.metrics.runCounter)
}

func TestInitScoreMetrics_NilMeter(t *testing.T) {
	e := newTestEngine()

	m, err := e.initScoreMetrics()
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.Nil(t, e.metrics)
}

func TestRecordRunTelemetry_Disabled(t *testing.T) {
	e := newTestEngine()

	// Should not panic with neither tracer nor meter configured.
	e.recordRunTelemetry(context.Background(), sampleRun())
}

func TestRecordRunTelemetry_TracerOnly(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())

	e := newTestEngine(WithTracer(tp.Tracer("test")))

	// Should not panic with only a tracer configured.
	e.recordRunTelemetry(context.Background(), sampleRun())
}

func TestRecordRunTelemetry_MeterOnly(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	e := newTestEngine(WithMeter(meter))

	// Should not panic with only a meter configured.
	e.recordRunTelemetry(context.Background(), sampleRun())
}

func TestRecordRunTelemetry_TracerAndMeter(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	meter := noop.NewMeterProvider().Meter("test")

	e := newTestEngine(WithTracer(tp.Tracer("test")), WithMeter(meter))

	// Should not panic with both configured.
	e.recordRunTelemetry(context.Background(), sampleRun())
}

func TestRecordValidationRun_WithTelemetry(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	meter := noop.NewMeterProvider().Meter("test")

	store := history.NewMemoryStore()
	e := newTestEngine(
		WithHistory(store),
		WithTracer(tp.Tracer("test")),
		WithMeter(meter),
	)

	results := []ValidationResult{result("c-1", StatusValid, 1)}
	run, err := e.RecordValidationRun(context.Background(), "diag-1", results, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, run.Score)
}
