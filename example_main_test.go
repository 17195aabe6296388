package sdk_test

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/archmap-ai/sdk"
	"github.com/archmap-ai/sdk/diagram"
	"github.com/archmap-ai/sdk/document"
	"github.com/archmap-ai/sdk/job"
	"github.com/archmap-ai/sdk/operation"
	"github.com/archmap-ai/sdk/scoring"
)

// Helper to create a pipeline without logging
func newQuietPipeline() (sdk.Pipeline, error) {
	resolver := operation.NewStaticResolver()
	resolver.Add(
		operation.Operation{
			ID:          "op-checkout",
			Name:        "Checkout",
			Description: "User submits an order for payment",
		},
		document.Document{
			ID:       "doc-1",
			Filename: "architecture.md",
			Content: "The user clicks checkout and the React client sends an HTTPS " +
				"request through the firewall and web application firewall. An nginx " +
				"load balancer routes it to the API gateway, which forwards to the " +
				"orders endpoint. Backend business logic queries the postgres " +
				"database, and a webhook event triggers the confirmation view to render.",
		},
	)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return sdk.NewPipeline(
		sdk.WithResolver(resolver),
		sdk.WithLogger(logger),
		sdk.WithCompletionDelay(0),
	)
}

// pollJob waits for a generation job to reach a terminal status.
func pollJob(p sdk.Pipeline, jobID string) *job.Job {
	for {
		j, err := p.GetJob(context.Background(), jobID)
		if err != nil || j == nil {
			log.Fatal("generation job lost")
		}
		if j.Status.IsTerminal() {
			return j
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// ExampleNewPipeline demonstrates creating and starting the diagram pipeline.
func ExampleNewPipeline() {
	pipeline, err := newQuietPipeline()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := pipeline.Start(ctx); err != nil {
		log.Fatal(err)
	}
	defer pipeline.Shutdown(ctx)

	status := pipeline.Health()
	fmt.Printf("Pipeline healthy: %v\n", status.IsHealthy())

	// Output: Pipeline healthy: true
}

// ExamplePipeline_StartDiagramGeneration demonstrates generating a diagram
// and polling the job to completion.
func ExamplePipeline_StartDiagramGeneration() {
	pipeline, err := newQuietPipeline()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := pipeline.Start(ctx); err != nil {
		log.Fatal(err)
	}
	defer pipeline.Shutdown(ctx)

	j, err := pipeline.StartDiagramGeneration(ctx, "op-checkout")
	if err != nil {
		log.Fatal(err)
	}

	done := pollJob(pipeline, j.ID)
	d, err := pipeline.GetDiagram(ctx, done.DiagramID)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s: %s\n", d.Name, d.Status)
	fmt.Printf("Components: %d, edges: %d\n", len(d.Components), len(d.Edges))

	// Output:
	// Checkout Architecture: COMPLETED
	// Components: 11, edges: 14
}

// ExamplePipeline_ExportDiagram demonstrates exporting a completed diagram.
func ExamplePipeline_ExportDiagram() {
	pipeline, err := newQuietPipeline()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := pipeline.Start(ctx); err != nil {
		log.Fatal(err)
	}
	defer pipeline.Shutdown(ctx)

	j, err := pipeline.StartDiagramGeneration(ctx, "op-checkout")
	if err != nil {
		log.Fatal(err)
	}
	done := pollJob(pipeline, j.ID)

	export, err := pipeline.ExportDiagram(ctx, done.DiagramID, diagram.FormatJSON)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Exported %d components and %d edges\n",
		len(export.Components), len(export.Edges))

	// Output: Exported 11 components and 14 edges
}

// ExamplePipeline_Scoring demonstrates scoring validation results.
func ExamplePipeline_Scoring() {
	pipeline, err := newQuietPipeline()
	if err != nil {
		log.Fatal(err)
	}

	engine := pipeline.Scoring()
	results := []scoring.ValidationResult{
		{ID: "res-1", ComponentID: "c-api", Status: scoring.StatusValid, Confidence: 1.0},
		{ID: "res-2", ComponentID: "c-db", Status: scoring.StatusWarning, Confidence: 1.0},
	}

	score := engine.CalculateWeightedScore(results, nil)
	fmt.Printf("Score: %d (%s)\n", score, scoring.HealthStatusForScore(score))

	// Output: Score: 85 (GOOD)
}

// This example is not meant to be run, just to show example usage in documentation
func Example() {
	// Initialize the pipeline
	pipeline, err := newQuietPipeline()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := pipeline.Start(ctx); err != nil {
		log.Fatal(err)
	}
	defer pipeline.Shutdown(ctx)

	// Generate a diagram for the checkout flow
	j, err := pipeline.StartDiagramGeneration(ctx, "op-checkout")
	if err != nil {
		log.Fatal(err)
	}
	done := pollJob(pipeline, j.ID)

	d, err := pipeline.GetDiagram(ctx, done.DiagramID)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Generated diagram: %s\n", d.Name)

	// Score a clean validation pass over two of its components
	results := []scoring.ValidationResult{
		{ID: "res-1", ComponentID: d.Components[0].ID, Status: scoring.StatusValid, Confidence: 1.0},
		{ID: "res-2", ComponentID: d.Components[1].ID, Status: scoring.StatusValid, Confidence: 1.0},
	}
	score := pipeline.Scoring().CalculateWeightedScore(results, nil)
	fmt.Printf("Score: %d (%s)\n", score, scoring.HealthStatusForScore(score))

	// Output:
	// Generated diagram: Checkout Architecture
	// Score: 100 (EXCELLENT)
}

func init() {
	// Suppress logging output in examples
	log.SetOutput(os.Stderr)
}
