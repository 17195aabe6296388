package sdk

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/archmap-ai/sdk/extraction"
	"github.com/archmap-ai/sdk/history"
	"github.com/archmap-ai/sdk/operation"
)

// PipelineOption configures the Pipeline.
type PipelineOption func(*pipelineConfig)

// pipelineConfig holds configuration for the Pipeline instance.
type pipelineConfig struct {
	logger             *slog.Logger
	tracer             trace.Tracer
	meter              metric.Meter
	resolver           operation.Resolver
	historyStore       history.Store
	ownsHistory        bool
	maxConcurrentJobs  int
	completionDelay    time.Duration
	relevanceThreshold float64
	generator          extraction.Generator
	weights            map[string]float64
}

// WithLogger sets a custom logger for the pipeline.
// If not provided, a default logger will be created.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(c *pipelineConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for distributed tracing.
// Generation jobs are traced as "pipeline.generate" spans.
func WithTracer(tracer trace.Tracer) PipelineOption {
	return func(c *pipelineConfig) {
		c.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter for pipeline metrics.
// When set, the pipeline records job counts, generation durations, and
// extraction confidence distributions.
func WithMeter(meter metric.Meter) PipelineOption {
	return func(c *pipelineConfig) {
		c.meter = meter
	}
}

// WithResolver sets the operation resolver used to look up operations and
// their document corpora. A resolver is required.
func WithResolver(resolver operation.Resolver) PipelineOption {
	return func(c *pipelineConfig) {
		c.resolver = resolver
	}
}

// WithHistory sets the validation-run history store used for scoring trends.
// The caller retains ownership: the pipeline will not close a store supplied
// through this option.
func WithHistory(store history.Store) PipelineOption {
	return func(c *pipelineConfig) {
		c.historyStore = store
		c.ownsHistory = false
	}
}

// withOwnedHistory installs a store the pipeline created itself and must
// close on shutdown.
func withOwnedHistory(store history.Store) PipelineOption {
	return func(c *pipelineConfig) {
		c.historyStore = store
		c.ownsHistory = true
	}
}

// WithMaxConcurrentJobs bounds the number of generation jobs processed at
// once. Jobs beyond the bound stay pending until a slot frees up.
// Values below 1 are ignored.
func WithMaxConcurrentJobs(n int) PipelineOption {
	return func(c *pipelineConfig) {
		if n > 0 {
			c.maxConcurrentJobs = n
		}
	}
}

// WithCompletionDelay sets the pause between a diagram finishing and its job
// reporting completion, so pollers observe the final progress step.
// Negative values are ignored; zero disables the pause.
func WithCompletionDelay(d time.Duration) PipelineOption {
	return func(c *pipelineConfig) {
		if d >= 0 {
			c.completionDelay = d
		}
	}
}

// WithRelevanceThreshold overrides the extraction engine's minimum match
// confidence. Values outside (0, 1] are ignored.
func WithRelevanceThreshold(threshold float64) PipelineOption {
	return func(c *pipelineConfig) {
		c.relevanceThreshold = threshold
	}
}

// WithGenerator sets an optional generation backend for refining extracted
// component details. Without one the keyword heuristics stand on their own.
func WithGenerator(g extraction.Generator) PipelineOption {
	return func(c *pipelineConfig) {
		c.generator = g
	}
}

// WithComponentWeights merges scoring weight overrides into the default
// component-type weight table.
func WithComponentWeights(weights map[string]float64) PipelineOption {
	return func(c *pipelineConfig) {
		c.weights = weights
	}
}
