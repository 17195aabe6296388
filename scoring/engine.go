package scoring

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/archmap-ai/sdk/history"
)

// ErrNoHistory is returned by operations that need a history store when the
// engine was built without one.
var ErrNoHistory = errors.New("scoring: no history store configured")

// DefaultComponentWeights returns the built-in component-type weights.
// Types absent from the map weigh 1.0.
func DefaultComponentWeights() map[string]float64 {
	return map[string]float64{
		"DATABASE": 1.3,
		"SYSTEM":   1.2,
	}
}

// Engine computes diagram accuracy scores from validation results.
//
// All calculations are pure functions of their inputs plus the engine's
// component-type weights; the optional history store only comes into play
// for recording runs and reading trends. The engine is safe for concurrent
// use, including weight updates racing score calculations.
type Engine struct {
	mu      sync.RWMutex
	weights map[string]float64

	history history.Store
	logger  *slog.Logger

	tracer  trace.Tracer
	meter   metric.Meter
	metrics *scoreMetrics
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHistory attaches a history store for recording runs and serving
// trends.
func WithHistory(store history.Store) EngineOption {
	return func(e *Engine) {
		e.history = store
	}
}

// WithTracer enables span creation around run recording.
func WithTracer(tracer trace.Tracer) EngineOption {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

// WithMeter enables scoring metrics on the given meter.
func WithMeter(meter metric.Meter) EngineOption {
	return func(e *Engine) {
		e.meter = meter
	}
}

// WithComponentWeights merges the given weights over the defaults at
// construction time.
func WithComponentWeights(weights map[string]float64) EngineOption {
	return func(e *Engine) {
		for t, w := range weights {
			e.weights[t] = w
		}
	}
}

// NewEngine creates a scoring engine with the provided options.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		weights: DefaultComponentWeights(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}

	metrics, err := e.initScoreMetrics()
	if err != nil {
		e.logger.Warn("scoring metrics disabled", slog.String("error", err.Error()))
	} else {
		e.metrics = metrics
	}
	return e
}

// ComponentWeights returns a copy of the engine's current component-type
// weights.
func (e *Engine) ComponentWeights() map[string]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[string]float64, len(e.weights))
	for t, w := range e.weights {
		out[t] = w
	}
	return out
}

// SetComponentWeights merges the given weights into the engine's current
// set. Existing types keep their weight unless overridden; types not
// mentioned are untouched.
func (e *Engine) SetComponentWeights(weights map[string]float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for t, w := range weights {
		e.weights[t] = w
	}
}

// CalculateWeightedScore reduces validation results to a single score in
// [0, 100].
//
// Each result contributes its status base score scaled by confidence and by
// the weight of its component's type; the sum is normalized by total weight,
// so adding a heavily weighted component shifts the average rather than
// inflating it. componentTypes maps component IDs to type names and may be
// nil, in which case every component weighs 1.0. An empty result set scores
// zero.
func (e *Engine) CalculateWeightedScore(results []ValidationResult, componentTypes map[string]string) int {
	if len(results) == 0 {
		return 0
	}

	weights := e.ComponentWeights()

	var weightedSum, weightSum float64
	for _, r := range results {
		w := 1.0
		if t, ok := componentTypes[r.ComponentID]; ok {
			if tw, ok := weights[t]; ok {
				w = tw
			}
		}
		weightedSum += r.Status.BaseScore() * clamp01(r.Confidence) * w
		weightSum += w
	}
	if weightSum == 0 {
		return 0
	}

	score := int(math.Round(weightedSum / weightSum))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Breakdown decomposes an overall score into quality dimensions, each in
// [0, 100].
type Breakdown struct {
	ContentAccuracy   int `json:"contentAccuracy"`
	DataCompleteness  int `json:"dataCompleteness"`
	SourceConsistency int `json:"sourceConsistency"`
	Freshness         int `json:"freshness"`
}

// CalculateScoreBreakdown derives the per-dimension quality scores. Every
// dimension starts at 100 and each affected result deducts once: content
// mismatches hit accuracy, missing data and unverifiable verdicts hit
// completeness, conflicting sources hit consistency, and stale verdicts hit
// freshness. Dimensions floor at zero.
func (e *Engine) CalculateScoreBreakdown(results []ValidationResult) Breakdown {
	b := Breakdown{
		ContentAccuracy:   100,
		DataCompleteness:  100,
		SourceConsistency: 100,
		Freshness:         100,
	}

	for _, r := range results {
		if r.HasDiscrepancy(DiscrepancyContentMismatch) {
			b.ContentAccuracy -= 15
		}
		if r.HasDiscrepancy(DiscrepancyMissingData) {
			b.DataCompleteness -= 15
		}
		if r.Status == StatusUnverifiable {
			b.DataCompleteness -= 10
		}
		if r.HasDiscrepancy(DiscrepancyConflictingSources) {
			b.SourceConsistency -= 20
		}
		if r.Status == StatusStale {
			b.Freshness -= 15
		}
	}

	b.ContentAccuracy = floor0(b.ContentAccuracy)
	b.DataCompleteness = floor0(b.DataCompleteness)
	b.SourceConsistency = floor0(b.SourceConsistency)
	b.Freshness = floor0(b.Freshness)
	return b
}

// ComponentScores returns the per-component score, keyed by component ID.
// Each score is the status base score scaled by confidence and rounded;
// when a component appears in several results, the last one wins.
func (e *Engine) ComponentScores(results []ValidationResult) map[string]int {
	scores := make(map[string]int, len(results))
	for _, r := range results {
		scores[r.ComponentID] = int(math.Round(r.Status.BaseScore() * clamp01(r.Confidence)))
	}
	return scores
}

// ScoreDelta returns the score movement from the previous result set to the
// current one. Both scores are computed without component-type context, so
// the delta reflects validation outcomes alone.
func (e *Engine) ScoreDelta(current, previous []ValidationResult) int {
	return e.CalculateWeightedScore(current, nil) - e.CalculateWeightedScore(previous, nil)
}

// RecordValidationRun persists the outcome of a validation pass as a run
// record and returns it. The run's score is the weighted score of the
// results under the given type context, and its component count is the
// number of distinct components covered. Returns ErrNoHistory when the
// engine has no history store.
func (e *Engine) RecordValidationRun(ctx context.Context, diagramID string, results []ValidationResult, componentTypes map[string]string) (history.Run, error) {
	if e.history == nil {
		return history.Run{}, ErrNoHistory
	}

	components := make(map[string]struct{}, len(results))
	for _, r := range results {
		components[r.ComponentID] = struct{}{}
	}

	run := history.Run{
		ID:             uuid.New().String(),
		DiagramID:      diagramID,
		Score:          e.CalculateWeightedScore(results, componentTypes),
		ComponentCount: len(components),
		CompletedAt:    time.Now().UTC(),
	}

	if err := e.history.RecordRun(ctx, run); err != nil {
		return history.Run{}, err
	}

	e.recordRunTelemetry(ctx, run)
	e.logger.Info("validation run recorded",
		slog.String("diagram_id", run.DiagramID),
		slog.Int("score", run.Score),
		slog.Int("component_count", run.ComponentCount),
	)
	return run, nil
}

// TrendPoint is one historical score on a diagram's timeline.
type TrendPoint struct {
	Score          int       `json:"score"`
	Date           time.Time `json:"date"`
	ComponentCount int       `json:"componentCount"`
}

// ValidationTrends returns the diagram's recorded scores ordered oldest
// first, ready for charting. At most limit points are returned, with zero
// or less applying the store's default. An engine without a history store
// reports an empty trend rather than an error.
func (e *Engine) ValidationTrends(ctx context.Context, diagramID string, limit int) ([]TrendPoint, error) {
	if e.history == nil {
		return []TrendPoint{}, nil
	}

	runs, err := e.history.RecentRuns(ctx, diagramID, limit)
	if err != nil {
		return nil, err
	}

	// Stores serve newest first; trends chart oldest first.
	points := make([]TrendPoint, 0, len(runs))
	for i := len(runs) - 1; i >= 0; i-- {
		points = append(points, TrendPoint{
			Score:          runs[i].Score,
			Date:           runs[i].CompletedAt,
			ComponentCount: runs[i].ComponentCount,
		})
	}
	return points, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func floor0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
