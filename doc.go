// Package sdk provides the official Software Development Kit for the Archmap
// diagram pipeline.
//
// The Archmap SDK synthesizes architecture diagrams for user operations from
// their document evidence, tracks the asynchronous generation jobs that
// produce them, and scores the results against validation evidence over
// time. It provides APIs for starting and polling generation, reading and
// editing the resulting diagrams, exporting them, and grading them with
// weighted health scores.
//
// # Core Concepts
//
// The SDK is organized around several key concepts:
//
//   - Operations: user flows (checkout, login, search) resolved to a name,
//     description, and document corpus
//   - Diagrams: fixed-topology component-and-edge structures describing the
//     architecture behind an operation
//   - Components: the eleven architectural slots of a diagram, populated or
//     greyed out depending on extracted evidence
//   - Jobs: asynchronous generation work tracked by polling, with forward
//     moving progress
//   - Scoring: weighted 0 to 100 health scores computed from validation
//     results, with per-dimension breakdowns and trend history
//
// # Architecture
//
// The SDK follows a layered architecture:
//
//   - Pipeline Layer: the Pipeline facade orchestrating jobs, diagrams,
//     and scoring
//   - Extraction Layer: keyword evidence detection over the operation's
//     document corpus
//   - Assembly Layer: canonical component and edge synthesis from
//     extraction results
//   - History Layer: pluggable run persistence backed by memory, Redis,
//     or SQLite
//   - Observability Layer: OpenTelemetry metrics and traces
//
// # Getting Started
//
// To use the SDK, first create a pipeline:
//
//	import "github.com/archmap-ai/sdk"
//
//	pipeline, err := sdk.NewPipeline(
//		sdk.WithResolver(resolver),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := pipeline.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer pipeline.Shutdown(ctx)
//
// Then start a generation job and poll it to completion:
//
//	j, err := pipeline.StartDiagramGeneration(ctx, "op-checkout")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for {
//		j, _ = pipeline.GetJob(ctx, j.ID)
//		if j.Status.IsTerminal() {
//			break
//		}
//		time.Sleep(100 * time.Millisecond)
//	}
//
//	diagram, err := pipeline.GetDiagram(ctx, j.DiagramID)
//
// Configuration can also come from an archmap.yaml file:
//
//	cfg, err := config.LoadFromCurrentDir()
//	if err != nil {
//		log.Fatal(err)
//	}
//	pipeline, err := sdk.NewPipelineFromConfig(cfg, sdk.WithResolver(resolver))
//
// # Error Handling
//
// Pipeline operations return PipelineError values that carry the operation
// name, an error kind, and optional context:
//
//	j, err := pipeline.StartDiagramGeneration(ctx, "op-unknown")
//	if errors.Is(err, sdk.ErrOperationNotFound) {
//		// the resolver does not know this operation
//	}
//
// Lookups of jobs, diagrams, and components are not errors when the record
// is absent: they return nil with a nil error.
//
// # Thread Safety
//
// All Pipeline methods are safe for concurrent use. Returned jobs,
// diagrams, and components are snapshots; mutating them does not affect
// pipeline state.
package sdk
