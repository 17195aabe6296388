package sdk

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/archmap-ai/sdk/config"
	"github.com/archmap-ai/sdk/diagram"
	"github.com/archmap-ai/sdk/extraction"
	"github.com/archmap-ai/sdk/history"
	"github.com/archmap-ai/sdk/job"
	"github.com/archmap-ai/sdk/scoring"
)

// NewPipeline creates a diagram generation pipeline with the given options.
// A resolver is required; everything else has working defaults.
//
// Example:
//
//	pipeline, err := sdk.NewPipeline(
//		sdk.WithResolver(resolver),
//		sdk.WithLogger(logger),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
func NewPipeline(opts ...PipelineOption) (Pipeline, error) {
	const op = "NewPipeline"

	cfg := &pipelineConfig{
		maxConcurrentJobs: 4,
		completionDelay:   150 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.resolver == nil {
		return nil, NewConfigurationError(op, fmt.Errorf("%w: resolver is required", ErrInvalidConfig))
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	extractionOpts := []extraction.Option{
		extraction.WithLogger(logger.With("component", "extraction")),
	}
	if cfg.relevanceThreshold > 0 {
		extractionOpts = append(extractionOpts, extraction.WithRelevanceThreshold(cfg.relevanceThreshold))
	}
	if cfg.generator != nil {
		extractionOpts = append(extractionOpts, extraction.WithGenerator(cfg.generator))
	}

	scoringOpts := []scoring.EngineOption{
		scoring.WithLogger(logger.With("component", "scoring")),
	}
	if cfg.historyStore != nil {
		scoringOpts = append(scoringOpts, scoring.WithHistory(cfg.historyStore))
	}
	if cfg.tracer != nil {
		scoringOpts = append(scoringOpts, scoring.WithTracer(cfg.tracer))
	}
	if cfg.meter != nil {
		scoringOpts = append(scoringOpts, scoring.WithMeter(cfg.meter))
	}
	if cfg.weights != nil {
		scoringOpts = append(scoringOpts, scoring.WithComponentWeights(cfg.weights))
	}

	metrics, err := initPipelineMetrics(cfg.meter)
	if err != nil {
		logger.Warn("pipeline metrics disabled", "error", err)
	}

	runCtx, runCancel := context.WithCancel(context.Background())

	p := &defaultPipeline{
		logger:          logger,
		tracer:          cfg.tracer,
		metrics:         metrics,
		resolver:        cfg.resolver,
		assembler:       diagram.NewAssembler(extraction.NewEngine(extractionOpts...), logger.With("component", "assembler")),
		scorer:          scoring.NewEngine(scoringOpts...),
		completionDelay: cfg.completionDelay,
		jobs:            make(map[string]*job.Job),
		diagrams:        make(map[string]*diagram.Diagram),
		byOperation:     make(map[string][]string),
		activeByOp:      make(map[string]string),
		sem:             make(chan struct{}, cfg.maxConcurrentJobs),
		runCtx:          runCtx,
		runCancel:       runCancel,
	}

	if cfg.ownsHistory && cfg.historyStore != nil {
		store := cfg.historyStore
		p.historyCloser = func() {
			CloseWithLog(store, logger, "history store")
		}
	}

	return p, nil
}

// NewPipelineFromConfig creates a pipeline from a parsed archmap.yaml
// configuration. Explicit options take precedence over configured values,
// and a history store is created from the config when the caller did not
// supply one.
func NewPipelineFromConfig(cfg *config.Config, opts ...PipelineOption) (Pipeline, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}

	// Probe the explicit options so config only fills what the caller
	// left unset.
	probe := &pipelineConfig{}
	for _, opt := range opts {
		opt(probe)
	}

	base := []PipelineOption{
		WithMaxConcurrentJobs(cfg.Pipeline.GetMaxConcurrentJobs()),
		WithCompletionDelay(cfg.Pipeline.GetCompletionDelay()),
		WithRelevanceThreshold(cfg.Extraction.GetRelevanceThreshold()),
	}
	if probe.logger == nil {
		base = append(base, WithLogger(newConfiguredLogger(cfg.Logging)))
	}
	if weights := cfg.Scoring.GetWeights(); weights != nil {
		base = append(base, WithComponentWeights(weights))
	}
	var ownedStore history.Store
	if probe.historyStore == nil {
		store, err := history.NewStore(history.Options{
			Backend:    history.Backend(cfg.History.GetBackend()),
			RedisURL:   cfg.History.GetRedisURL(),
			SQLitePath: cfg.History.GetSQLitePath(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create history store: %w", err)
		}
		ownedStore = store
		base = append(base, withOwnedHistory(store))
	}

	p, err := NewPipeline(append(base, opts...)...)
	if err != nil {
		if ownedStore != nil {
			_ = ownedStore.Close()
		}
		return nil, err
	}
	return p, nil
}

// newConfiguredLogger builds a logger from the logging config section.
func newConfiguredLogger(cfg *config.LoggingConfig) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.GetLevel()}
	if cfg.GetFormat() == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, handlerOpts))
}
