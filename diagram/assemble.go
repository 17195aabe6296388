package diagram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/archmap-ai/sdk/arch"
	"github.com/archmap-ai/sdk/document"
	"github.com/archmap-ai/sdk/extraction"
)

// edgeTemplate describes one connection of the canonical flow.
type edgeTemplate struct {
	source arch.ComponentType
	target arch.ComponentType
	kind   EdgeType
	label  string
}

// canonicalFlow is the fixed edge template every synthesized diagram
// carries: the request chain down the main flow, the response chain back,
// and the event fan-out to the auxiliary lane.
var canonicalFlow = []edgeTemplate{
	{arch.TypeUserAction, arch.TypeClientCode, EdgeRequest, "initiates"},
	{arch.TypeClientCode, arch.TypeFirewall, EdgeRequest, "HTTPS request"},
	{arch.TypeFirewall, arch.TypeWAF, EdgeRequest, "filtered traffic"},
	{arch.TypeWAF, arch.TypeLoadBalancer, EdgeRequest, "inspected traffic"},
	{arch.TypeLoadBalancer, arch.TypeAPIGateway, EdgeRequest, "routed request"},
	{arch.TypeAPIGateway, arch.TypeAPIEndpoint, EdgeRequest, "forwards"},
	{arch.TypeAPIEndpoint, arch.TypeBackendLogic, EdgeRequest, "invokes"},
	{arch.TypeBackendLogic, arch.TypeDatabase, EdgeRequest, "queries"},
	{arch.TypeDatabase, arch.TypeBackendLogic, EdgeResponse, "result set"},
	{arch.TypeBackendLogic, arch.TypeAPIEndpoint, EdgeResponse, "response payload"},
	{arch.TypeAPIEndpoint, arch.TypeClientCode, EdgeResponse, "response"},
	{arch.TypeClientCode, arch.TypeViewUpdate, EdgeResponse, "renders"},
	{arch.TypeBackendLogic, arch.TypeEventHandler, EdgeRequest, "emits event"},
	{arch.TypeEventHandler, arch.TypeViewUpdate, EdgeResponse, "pushes update"},
}

// Assembler builds complete diagrams from extraction results. Every build
// produces the same eleven components at their canonical positions and the
// same canonical flow edges; only titles, descriptions, confidences, and
// statuses vary with the evidence.
type Assembler struct {
	engine *extraction.Engine
	logger *slog.Logger
}

// NewAssembler creates an assembler backed by the given extraction engine.
// A nil logger falls back to slog.Default.
func NewAssembler(engine *extraction.Engine, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		engine: engine,
		logger: logger,
	}
}

// BuildInput carries everything needed to synthesize one diagram.
type BuildInput struct {
	// DiagramID is the identity of the diagram being populated. Generated
	// when empty.
	DiagramID string

	// OperationID is the operation this diagram describes.
	OperationID string

	// Name is the diagram display name. Derived from the operation name
	// when empty.
	Name string

	// OperationName and OperationDescription feed title and description
	// synthesis.
	OperationName        string
	OperationDescription string

	// Documents is the evidence corpus.
	Documents []document.Document
}

// Build synthesizes a complete diagram from the input corpus. The result
// always contains all eleven components and the full canonical flow; it is
// marked StatusCompleted with both timestamps set to the build time.
func (a *Assembler) Build(ctx context.Context, in BuildInput) *Diagram {
	now := time.Now().UTC()

	id := in.DiagramID
	if id == "" {
		id = uuid.New().String()
	}
	name := in.Name
	if name == "" {
		name = fmt.Sprintf("%s Architecture", in.OperationName)
	}

	d := &Diagram{
		ID:          id,
		OperationID: in.OperationID,
		Name:        name,
		Status:      StatusCompleted,
		Viewport:    DefaultViewport(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	results := a.engine.ExtractAll(ctx, in.OperationName, in.OperationDescription, in.Documents)

	populated := 0
	for _, t := range arch.AllComponentTypes() {
		res := results[t]
		status := ComponentGreyedOut
		if res.HasData {
			status = ComponentPopulated
			populated++
		}
		d.Components = append(d.Components, Component{
			ID:               uuid.New().String(),
			DiagramID:        d.ID,
			Type:             t,
			Title:            res.Title,
			Description:      res.Description,
			Status:           status,
			Confidence:       res.Confidence,
			Position:         CanonicalPosition(t),
			SourceExcerpt:    res.SourceExcerpt,
			SourceDocumentID: res.SourceDocumentID,
		})
	}

	d.Edges = buildFlowEdges(d)

	a.logger.Info("diagram assembled",
		slog.String("diagram_id", d.ID),
		slog.String("operation_id", d.OperationID),
		slog.Int("populated_components", populated),
		slog.Int("edge_count", len(d.Edges)),
	)
	return d
}

// buildFlowEdges instantiates the canonical flow template against the
// diagram's component IDs.
func buildFlowEdges(d *Diagram) []Edge {
	byType := make(map[arch.ComponentType]string, len(d.Components))
	for i := range d.Components {
		byType[d.Components[i].Type] = d.Components[i].ID
	}

	edges := make([]Edge, 0, len(canonicalFlow))
	for _, tmpl := range canonicalFlow {
		edges = append(edges, Edge{
			ID:        uuid.New().String(),
			DiagramID: d.ID,
			SourceID:  byType[tmpl.source],
			TargetID:  byType[tmpl.target],
			Type:      tmpl.kind,
			Label:     tmpl.label,
		})
	}
	return edges
}
