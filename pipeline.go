package sdk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/archmap-ai/sdk/diagram"
	"github.com/archmap-ai/sdk/job"
	"github.com/archmap-ai/sdk/operation"
	"github.com/archmap-ai/sdk/scoring"
)

// Pipeline provides the main SDK interface for synthesizing and managing
// architecture diagrams. It owns the asynchronous generation jobs, the
// diagrams they produce, and the scoring engine that grades them against
// validation evidence.
//
// The Pipeline acts as the central orchestrator, coordinating between:
//   - Operations: user flows resolved to a document corpus
//   - Extraction: keyword evidence detection per component slot
//   - Diagrams: fixed-topology component-and-edge structures
//   - Jobs: asynchronous generation tracked by polling
//   - Scoring: weighted health scores and trend history
type Pipeline interface {
	// Generation

	// StartDiagramGeneration begins asynchronous diagram synthesis for the
	// operation and returns the tracking job immediately. Completion is
	// observed by polling GetJob. While a job for the operation is still in
	// flight, repeated calls return that job instead of spawning another.
	StartDiagramGeneration(ctx context.Context, operationID string) (*job.Job, error)

	// GetJob retrieves a generation job by ID.
	// Returns nil without an error when the job does not exist.
	GetJob(ctx context.Context, jobID string) (*job.Job, error)

	// ListJobs returns jobs matching the filter, oldest first.
	ListJobs(ctx context.Context, filter job.Filter) ([]*job.Job, error)

	// Diagram access

	// GetDiagram retrieves a diagram by ID.
	// Returns nil without an error when the diagram does not exist.
	GetDiagram(ctx context.Context, diagramID string) (*diagram.Diagram, error)

	// GetDiagramsForOperation returns every diagram generated for the
	// operation in creation order.
	GetDiagramsForOperation(ctx context.Context, operationID string) ([]*diagram.Diagram, error)

	// GetLatestDiagramForOperation returns the most recently created diagram
	// for the operation, or nil when none exist.
	GetLatestDiagramForOperation(ctx context.Context, operationID string) (*diagram.Diagram, error)

	// UpdateDiagram applies a partial update to diagram metadata.
	// Returns nil without an error when the diagram does not exist.
	UpdateDiagram(ctx context.Context, diagramID string, update diagram.Update) (*diagram.Diagram, error)

	// UpdateComponent applies a partial title/description edit to a
	// component, marking it user-modified and snapshotting the replaced
	// text on the first edit. Returns nil without an error when the diagram
	// or component does not exist.
	UpdateComponent(ctx context.Context, diagramID, componentID string, update diagram.ComponentUpdate) (*diagram.Component, error)

	// ResetComponent restores a component's pre-edit title and description
	// and recomputes its status from the original extraction outcome.
	// Resetting a never-modified component is a no-op success.
	ResetComponent(ctx context.Context, diagramID, componentID string) (*diagram.Component, error)

	// Export

	// ExportDiagram renders a complete diagram snapshot in the given format.
	// Returns nil without an error when the diagram does not exist, and
	// ErrUnsupportedExportFormat for formats other than JSON.
	ExportDiagram(ctx context.Context, diagramID string, format diagram.ExportFormat) (*diagram.Export, error)

	// Scoring

	// Scoring returns the scoring engine for validation results, reports,
	// and trends.
	Scoring() *scoring.Engine

	// Health

	// Health reports a snapshot of the pipeline's operational state.
	Health() HealthStatus

	// Lifecycle

	// Start marks the pipeline operational.
	// This should be called before submitting generation work.
	Start(ctx context.Context) error

	// Shutdown stops accepting work and drains in-flight generation jobs,
	// bounded by the context. Jobs still running when the context expires
	// are cancelled and recorded as failed.
	Shutdown(ctx context.Context) error
}

// defaultPipeline is the concrete implementation of Pipeline.
type defaultPipeline struct {
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   *pipelineMetrics
	resolver  operation.Resolver
	assembler *diagram.Assembler
	scorer    *scoring.Engine

	completionDelay time.Duration

	mu          sync.RWMutex
	jobs        map[string]*job.Job
	diagrams    map[string]*diagram.Diagram
	byOperation map[string][]string
	activeByOp  map[string]string
	started     bool
	shutdown    bool

	sem       chan struct{}
	wg        sync.WaitGroup
	runCtx    context.Context
	runCancel context.CancelFunc

	historyCloser func()
}

// StartDiagramGeneration registers a pending diagram and job, then hands the
// build to a worker goroutine. The returned job is a snapshot; poll GetJob
// for progress.
func (p *defaultPipeline) StartDiagramGeneration(ctx context.Context, operationID string) (*job.Job, error) {
	const op = "Pipeline.StartDiagramGeneration"

	p.mu.RLock()
	if p.shutdown {
		p.mu.RUnlock()
		return nil, NewShutdownError(op, ErrShuttingDown)
	}
	if jobID, ok := p.activeByOp[operationID]; ok {
		existing := p.jobs[jobID].Clone()
		p.mu.RUnlock()
		return existing, nil
	}
	p.mu.RUnlock()

	opRec, err := p.resolver.Resolve(ctx, operationID)
	if err != nil {
		if errors.Is(err, operation.ErrNotFound) {
			return nil, NewNotFoundError(op, fmt.Errorf("%w: %s", ErrOperationNotFound, operationID))
		}
		return nil, NewInternalError(op, fmt.Errorf("failed to resolve operation: %w", err))
	}

	now := time.Now().UTC()
	d := &diagram.Diagram{
		ID:          uuid.New().String(),
		OperationID: operationID,
		Name:        fmt.Sprintf("%s Architecture", opRec.Name),
		Status:      diagram.StatusPending,
		Viewport:    diagram.DefaultViewport(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	j := &job.Job{
		ID:          uuid.New().String(),
		OperationID: operationID,
		DiagramID:   d.ID,
		Status:      job.StatusPending,
		CreatedAt:   now,
	}

	p.mu.Lock()
	if p.shutdown {
		p.mu.Unlock()
		return nil, NewShutdownError(op, ErrShuttingDown)
	}
	// A concurrent request may have won the race for this operation.
	if jobID, ok := p.activeByOp[operationID]; ok {
		existing := p.jobs[jobID].Clone()
		p.mu.Unlock()
		return existing, nil
	}
	p.jobs[j.ID] = j
	p.diagrams[d.ID] = d
	p.byOperation[operationID] = append(p.byOperation[operationID], d.ID)
	p.activeByOp[operationID] = j.ID
	p.wg.Add(1)
	p.mu.Unlock()

	p.logger.Info("diagram generation started",
		slog.String("job_id", j.ID),
		slog.String("operation_id", operationID),
		slog.String("diagram_id", d.ID),
	)

	go p.runGeneration(j.ID, d.ID, *opRec)

	return j.Clone(), nil
}

// runGeneration executes one generation job end to end on a worker
// goroutine. All failures land in the job record, never at the caller.
func (p *defaultPipeline) runGeneration(jobID, diagramID string, opRec operation.Operation) {
	defer p.wg.Done()

	select {
	case p.sem <- struct{}{}:
	case <-p.runCtx.Done():
		p.failJob(jobID, p.runCtx.Err())
		return
	}
	defer func() { <-p.sem }()

	ctx := p.runCtx
	start := time.Now()

	if p.tracer != nil {
		var span trace.Span
		ctx, span = p.tracer.Start(ctx, "pipeline.generate")
		defer span.End()
		span.SetAttributes(
			attribute.String("operation.id", opRec.ID),
			attribute.String("diagram.id", diagramID),
		)
	}

	p.advanceJob(jobID, 10)

	docs, err := p.resolver.Documents(ctx, opRec.ID)
	if err != nil {
		p.failJob(jobID, fmt.Errorf("failed to resolve documents: %w", err))
		p.metrics.recordGeneration(ctx, "failed", time.Since(start), nil)
		return
	}
	p.advanceJob(jobID, 25)

	built := p.assembler.Build(ctx, diagram.BuildInput{
		DiagramID:            diagramID,
		OperationID:          opRec.ID,
		OperationName:        opRec.Name,
		OperationDescription: opRec.Description,
		Documents:            docs,
	})
	if ctx.Err() != nil {
		p.failJob(jobID, ctx.Err())
		p.metrics.recordGeneration(ctx, "failed", time.Since(start), nil)
		return
	}
	p.advanceJob(jobID, 70)

	if issues := built.Validate(); len(issues) > 0 {
		p.logger.Warn("assembled diagram has validation issues",
			slog.String("diagram_id", diagramID),
			slog.Int("issues", len(issues)),
		)
	}

	p.mu.Lock()
	// Keep fields a caller may have read or edited while the build ran.
	if existing := p.diagrams[diagramID]; existing != nil {
		built.CreatedAt = existing.CreatedAt
		built.Name = existing.Name
		built.Viewport = existing.Viewport
	}
	built.UpdatedAt = time.Now().UTC()
	p.diagrams[diagramID] = built
	p.mu.Unlock()

	p.advanceJob(jobID, 90)

	if p.completionDelay > 0 {
		select {
		case <-time.After(p.completionDelay):
		case <-ctx.Done():
		}
	}

	p.completeJob(jobID, diagramID)
	p.metrics.recordGeneration(ctx, "completed", time.Since(start), built)
}

// advanceJob moves a job to PROCESSING and raises its progress.
// Progress never moves backwards and terminal jobs are left untouched.
func (p *defaultPipeline) advanceJob(jobID string, progress int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	j := p.jobs[jobID]
	if j == nil || j.Status.IsTerminal() {
		return
	}
	if j.Status == job.StatusPending {
		now := time.Now().UTC()
		j.Status = job.StatusProcessing
		j.StartedAt = &now
	}
	if progress > j.Progress {
		j.Progress = progress
	}
}

// completeJob finalizes a successful job at progress 100.
func (p *defaultPipeline) completeJob(jobID, diagramID string) {
	p.mu.Lock()
	j := p.jobs[jobID]
	if j == nil || j.Status.IsTerminal() {
		p.mu.Unlock()
		return
	}
	now := time.Now().UTC()
	j.Status = job.StatusCompleted
	j.Progress = 100
	j.CompletedAt = &now
	delete(p.activeByOp, j.OperationID)
	p.mu.Unlock()

	p.logger.Info("diagram generation completed",
		slog.String("job_id", jobID),
		slog.String("diagram_id", diagramID),
	)
}

// failJob records a failure on the job and marks its diagram failed.
func (p *defaultPipeline) failJob(jobID string, cause error) {
	p.mu.Lock()
	j := p.jobs[jobID]
	if j == nil || j.Status.IsTerminal() {
		p.mu.Unlock()
		return
	}
	now := time.Now().UTC()
	j.Status = job.StatusFailed
	j.Error = cause.Error()
	j.CompletedAt = &now
	if d := p.diagrams[j.DiagramID]; d != nil {
		d.Status = diagram.StatusFailed
		d.UpdatedAt = now
	}
	delete(p.activeByOp, j.OperationID)
	p.mu.Unlock()

	p.logger.Error("diagram generation failed",
		slog.String("job_id", jobID),
		slog.String("error", cause.Error()),
	)
}

// GetJob retrieves a generation job by ID.
func (p *defaultPipeline) GetJob(ctx context.Context, jobID string) (*job.Job, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.jobs[jobID].Clone(), nil
}

// ListJobs returns jobs matching the filter, oldest first.
func (p *defaultPipeline) ListJobs(ctx context.Context, filter job.Filter) ([]*job.Job, error) {
	p.mu.RLock()
	matched := make([]*job.Job, 0, len(p.jobs))
	for _, j := range p.jobs {
		if filter.Matches(j) {
			matched = append(matched, j.Clone())
		}
	}
	p.mu.RUnlock()

	sort.Slice(matched, func(i, k int) bool {
		if matched[i].CreatedAt.Equal(matched[k].CreatedAt) {
			return matched[i].ID < matched[k].ID
		}
		return matched[i].CreatedAt.Before(matched[k].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []*job.Job{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}

// GetDiagram retrieves a diagram by ID.
func (p *defaultPipeline) GetDiagram(ctx context.Context, diagramID string) (*diagram.Diagram, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.diagrams[diagramID].Clone(), nil
}

// GetDiagramsForOperation returns the operation's diagrams in creation order.
func (p *defaultPipeline) GetDiagramsForOperation(ctx context.Context, operationID string) ([]*diagram.Diagram, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ids := p.byOperation[operationID]
	out := make([]*diagram.Diagram, 0, len(ids))
	for _, id := range ids {
		if d := p.diagrams[id]; d != nil {
			out = append(out, d.Clone())
		}
	}
	return out, nil
}

// GetLatestDiagramForOperation returns the most recently created diagram for
// the operation.
func (p *defaultPipeline) GetLatestDiagramForOperation(ctx context.Context, operationID string) (*diagram.Diagram, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ids := p.byOperation[operationID]
	if len(ids) == 0 {
		return nil, nil
	}
	return p.diagrams[ids[len(ids)-1]].Clone(), nil
}

// UpdateDiagram applies a partial metadata update.
func (p *defaultPipeline) UpdateDiagram(ctx context.Context, diagramID string, update diagram.Update) (*diagram.Diagram, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	d := p.diagrams[diagramID]
	if d == nil {
		return nil, nil
	}

	changed := false
	if update.Name != nil {
		d.Name = *update.Name
		changed = true
	}
	if update.Viewport != nil {
		d.Viewport = *update.Viewport
		changed = true
	}
	if changed {
		d.UpdatedAt = time.Now().UTC()
	}

	return d.Clone(), nil
}

// UpdateComponent applies a partial title/description edit to one component.
// The pre-edit text is snapshotted on the first modification only, so a later
// reset can restore what extraction produced.
func (p *defaultPipeline) UpdateComponent(ctx context.Context, diagramID, componentID string, update diagram.ComponentUpdate) (*diagram.Component, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	d := p.diagrams[diagramID]
	if d == nil {
		return nil, nil
	}
	c := d.ComponentByID(componentID)
	if c == nil {
		return nil, nil
	}
	if update.Title == nil && update.Description == nil {
		return c.Clone(), nil
	}

	if !c.IsUserModified {
		title := c.Title
		description := c.Description
		c.OriginalTitle = &title
		c.OriginalDescription = &description
	}
	if update.Title != nil {
		c.Title = *update.Title
	}
	if update.Description != nil {
		c.Description = *update.Description
	}
	c.IsUserModified = true
	c.Status = diagram.ComponentUserModified
	d.UpdatedAt = time.Now().UTC()

	return c.Clone(), nil
}

// ResetComponent restores a component to its extraction outcome.
func (p *defaultPipeline) ResetComponent(ctx context.Context, diagramID, componentID string) (*diagram.Component, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	d := p.diagrams[diagramID]
	if d == nil {
		return nil, nil
	}
	c := d.ComponentByID(componentID)
	if c == nil {
		return nil, nil
	}
	if !c.IsUserModified {
		return c.Clone(), nil
	}

	if c.OriginalTitle != nil {
		c.Title = *c.OriginalTitle
	}
	if c.OriginalDescription != nil {
		c.Description = *c.OriginalDescription
	}
	c.OriginalTitle = nil
	c.OriginalDescription = nil
	c.IsUserModified = false
	if c.Confidence > 0 {
		c.Status = diagram.ComponentPopulated
	} else {
		c.Status = diagram.ComponentGreyedOut
	}
	d.UpdatedAt = time.Now().UTC()

	return c.Clone(), nil
}

// ExportDiagram renders a complete diagram snapshot in the given format.
func (p *defaultPipeline) ExportDiagram(ctx context.Context, diagramID string, format diagram.ExportFormat) (*diagram.Export, error) {
	const op = "Pipeline.ExportDiagram"

	if !format.IsValid() {
		return nil, NewValidationError(op, fmt.Errorf("%w: %s", ErrUnsupportedExportFormat, format))
	}

	p.mu.RLock()
	d := p.diagrams[diagramID]
	p.mu.RUnlock()
	if d == nil {
		return nil, nil
	}

	return diagram.NewExport(d, time.Now().UTC()), nil
}

// Scoring returns the scoring engine.
func (p *defaultPipeline) Scoring() *scoring.Engine {
	return p.scorer
}

// Health reports a snapshot of the pipeline's operational state.
func (p *defaultPipeline) Health() HealthStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()

	byStatus := make(map[string]int, 4)
	for _, j := range p.jobs {
		byStatus[j.Status.String()]++
	}
	details := map[string]any{
		"jobs_by_status": byStatus,
		"diagrams":       len(p.diagrams),
		"in_flight_jobs": len(p.activeByOp),
	}

	switch {
	case p.shutdown:
		return NewUnhealthyStatus("pipeline shut down", details)
	case !p.started:
		return NewDegradedStatus("pipeline not started", details)
	default:
		status := NewHealthyStatus("pipeline operational")
		status.Details = details
		return status
	}
}

// Start marks the pipeline operational.
func (p *defaultPipeline) Start(ctx context.Context) error {
	const op = "Pipeline.Start"

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.shutdown {
		return NewShutdownError(op, ErrShuttingDown)
	}
	if p.started {
		return NewValidationError(op, ErrAlreadyStarted)
	}

	p.logger.Info("starting diagram pipeline")
	p.started = true
	return nil
}

// Shutdown stops accepting work and drains in-flight generation jobs.
func (p *defaultPipeline) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.shutdown {
		p.mu.Unlock()
		return nil
	}
	p.shutdown = true
	p.started = false
	p.mu.Unlock()

	p.logger.Info("shutting down diagram pipeline")

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		// Cancel the stragglers; they record themselves as failed.
		p.runCancel()
		err = ctx.Err()
	}
	p.runCancel()

	if p.historyCloser != nil {
		p.historyCloser()
	}
	return err
}
