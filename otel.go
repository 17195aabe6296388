package sdk

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/archmap-ai/sdk/diagram"
)

// pipelineMetrics holds the OpenTelemetry instruments for the generation
// pipeline. They are created once at pipeline construction and reused for
// every job.
type pipelineMetrics struct {
	// jobsCounter increments for each finished generation job, labelled
	// by outcome
	jobsCounter metric.Int64Counter

	// durationHistogram records end-to-end generation time in
	// milliseconds
	durationHistogram metric.Float64Histogram

	// confidenceHistogram records per-component extraction confidence
	// (0 to 1), labelled by component type
	confidenceHistogram metric.Float64Histogram
}

// initPipelineMetrics creates the metric instruments when a meter is
// configured. Without a meter it returns nil metrics and no error.
func initPipelineMetrics(meter metric.Meter) (*pipelineMetrics, error) {
	if meter == nil {
		return nil, nil
	}

	metrics := &pipelineMetrics{}
	var err error

	metrics.jobsCounter, err = meter.Int64Counter(
		"pipeline.jobs",
		metric.WithDescription("Number of finished diagram generation jobs"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create jobs counter: %w", err)
	}

	metrics.durationHistogram, err = meter.Float64Histogram(
		"pipeline.generation.duration",
		metric.WithDescription("End-to-end diagram generation time"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	metrics.confidenceHistogram, err = meter.Float64Histogram(
		"pipeline.extraction.confidence",
		metric.WithDescription("Extraction confidence per populated component"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create confidence histogram: %w", err)
	}

	return metrics, nil
}

// recordGeneration emits the metrics for one finished job. Callers pass a
// nil diagram for failed jobs. Safe on a nil receiver so the pipeline never
// depends on observability being wired up.
func (m *pipelineMetrics) recordGeneration(ctx context.Context, outcome string, elapsed time.Duration, d *diagram.Diagram) {
	if m == nil {
		return
	}

	opts := metric.WithAttributes(attribute.String("outcome", outcome))
	if m.jobsCounter != nil {
		m.jobsCounter.Add(ctx, 1, opts)
	}
	if m.durationHistogram != nil {
		m.durationHistogram.Record(ctx, float64(elapsed.Milliseconds()), opts)
	}

	if d == nil || m.confidenceHistogram == nil {
		return
	}
	for _, c := range d.Components {
		if c.Confidence == 0 {
			continue
		}
		m.confidenceHistogram.Record(ctx, c.Confidence,
			metric.WithAttributes(attribute.String("component.type", c.Type.String())),
		)
	}
}
