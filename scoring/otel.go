package scoring

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/archmap-ai/sdk/history"
)

// scoreMetrics holds the OpenTelemetry instruments for the scoring engine.
// They are created once at engine construction and reused for every run.
type scoreMetrics struct {
	// scoreHistogram records overall run scores (0 to 100)
	scoreHistogram metric.Float64Histogram

	// runCounter increments for each recorded validation run
	runCounter metric.Int64Counter
}

// initScoreMetrics creates the metric instruments when a meter is
// configured. Without a meter it returns nil metrics and no error.
func (e *Engine) initScoreMetrics() (*scoreMetrics, error) {
	if e.meter == nil {
		return nil, nil
	}

	metrics := &scoreMetrics{}
	var err error

	metrics.scoreHistogram, err = e.meter.Float64Histogram(
		"scoring.score",
		metric.WithDescription("Overall validation run score from 0 (worst) to 100 (best)"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create score histogram: %w", err)
	}

	metrics.runCounter, err = e.meter.Int64Counter(
		"scoring.runs",
		metric.WithDescription("Number of validation runs recorded"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create run counter: %w", err)
	}

	return metrics, nil
}

// recordRunTelemetry emits the span and metrics for one recorded run.
// If neither tracer nor meter is configured this returns silently, so
// scoring never depends on observability being wired up.
func (e *Engine) recordRunTelemetry(ctx context.Context, run history.Run) {
	if e.tracer == nil && e.metrics == nil {
		return
	}

	if e.tracer != nil {
		var span trace.Span
		ctx, span = e.tracer.Start(ctx, "scoring.record_run")
		defer span.End()

		span.SetAttributes(
			attribute.String("diagram.id", run.DiagramID),
			attribute.Int("scoring.score", run.Score),
			attribute.Int("scoring.component_count", run.ComponentCount),
		)
	}

	if e.metrics != nil {
		opts := metric.WithAttributes(
			attribute.String("diagram.id", run.DiagramID),
		)
		if e.metrics.scoreHistogram != nil {
			e.metrics.scoreHistogram.Record(ctx, float64(run.Score), opts)
		}
		if e.metrics.runCounter != nil {
			e.metrics.runCounter.Add(ctx, 1, opts)
		}
	}
}
