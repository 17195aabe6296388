package diagram

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/archmap-ai/sdk/arch"
	"github.com/archmap-ai/sdk/document"
	"github.com/archmap-ai/sdk/extraction"
)

func testAssembler() *Assembler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewAssembler(extraction.NewEngine(extraction.WithLogger(logger)), logger)
}

func evidenceCorpus() []document.Document {
	return []document.Document{
		{
			ID:       "doc-1",
			Filename: "storage.md",
			Content:  "The orders database runs raw SQL nightly.",
		},
		{
			ID:       "doc-2",
			Filename: "frontend.md",
			Content:  "The browser client is a React frontend.",
		},
	}
}

func buildTestDiagram(t *testing.T, docs []document.Document) *Diagram {
	t.Helper()
	return testAssembler().Build(context.Background(), BuildInput{
		DiagramID:            "diag-1",
		OperationID:          "op-1",
		OperationName:        "Checkout",
		OperationDescription: "Customer completes a purchase",
		Documents:            docs,
	})
}

func TestBuildProducesFullStructure(t *testing.T) {
	d := buildTestDiagram(t, evidenceCorpus())

	if d.ID != "diag-1" {
		t.Errorf("diagram ID = %q, want diag-1", d.ID)
	}
	if d.OperationID != "op-1" {
		t.Errorf("operation ID = %q, want op-1", d.OperationID)
	}
	if d.Status != StatusCompleted {
		t.Errorf("status = %s, want COMPLETED", d.Status)
	}
	if d.Name != "Checkout Architecture" {
		t.Errorf("name = %q, want fallback from operation name", d.Name)
	}
	if d.CreatedAt.IsZero() || d.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}
	if d.Viewport != DefaultViewport() {
		t.Errorf("viewport = %+v, want default", d.Viewport)
	}

	want := arch.AllComponentTypes()
	if len(d.Components) != len(want) {
		t.Fatalf("component count = %d, want %d", len(d.Components), len(want))
	}
	for i, ct := range want {
		c := d.Components[i]
		if c.Type != ct {
			t.Errorf("components[%d].Type = %s, want %s", i, c.Type, ct)
		}
		if c.Position != CanonicalPosition(ct) {
			t.Errorf("%s at %+v, want canonical %+v", ct, c.Position, CanonicalPosition(ct))
		}
		if c.ID == "" {
			t.Errorf("%s has no ID", ct)
		}
		if c.DiagramID != d.ID {
			t.Errorf("%s carries diagram ID %q", ct, c.DiagramID)
		}
	}

	if len(d.Edges) != len(canonicalFlow) {
		t.Fatalf("edge count = %d, want %d", len(d.Edges), len(canonicalFlow))
	}
	for i, e := range d.Edges {
		if e.Label == "" {
			t.Errorf("edges[%d] has no label", i)
		}
		if !e.Type.IsValid() {
			t.Errorf("edges[%d] has invalid type %q", i, e.Type)
		}
		if d.ComponentByID(e.SourceID) == nil || d.ComponentByID(e.TargetID) == nil {
			t.Errorf("edges[%d] references unknown components", i)
		}
	}

	if issues := d.Validate(); len(issues) != 0 {
		t.Errorf("synthesized diagram failed validation: %v", issues)
	}
}

func TestBuildComponentStatuses(t *testing.T) {
	d := buildTestDiagram(t, evidenceCorpus())

	db := d.ComponentByType(arch.TypeDatabase)
	if db.Status != ComponentPopulated {
		t.Errorf("DATABASE status = %s, want POPULATED", db.Status)
	}
	if db.Confidence <= 0 {
		t.Errorf("DATABASE confidence = %g, want > 0", db.Confidence)
	}
	if db.SourceDocumentID != "doc-1" {
		t.Errorf("DATABASE source = %q, want doc-1", db.SourceDocumentID)
	}

	fw := d.ComponentByType(arch.TypeFirewall)
	if fw.Status != ComponentGreyedOut {
		t.Errorf("FIREWALL status = %s, want GREYED_OUT", fw.Status)
	}
	if fw.Confidence != 0 {
		t.Errorf("FIREWALL confidence = %g, want 0", fw.Confidence)
	}
	if fw.Description != extraction.NoDataDescription {
		t.Errorf("FIREWALL description = %q", fw.Description)
	}
}

func TestBuildEmptyCorpus(t *testing.T) {
	d := buildTestDiagram(t, nil)

	if len(d.Components) != len(arch.AllComponentTypes()) {
		t.Fatalf("component count = %d", len(d.Components))
	}
	for _, c := range d.Components {
		if c.Status != ComponentGreyedOut {
			t.Errorf("%s status = %s, want GREYED_OUT", c.Type, c.Status)
		}
		if c.Confidence != 0 {
			t.Errorf("%s confidence = %g, want 0", c.Type, c.Confidence)
		}
	}
	if issues := d.Validate(); len(issues) != 0 {
		t.Errorf("empty-corpus diagram failed validation: %v", issues)
	}
}

func TestBuildRequestAndResponseChains(t *testing.T) {
	d := buildTestDiagram(t, evidenceCorpus())

	typeOf := func(id string) arch.ComponentType {
		c := d.ComponentByID(id)
		if c == nil {
			t.Fatalf("unknown component %q", id)
		}
		return c.Type
	}

	hasEdge := func(src, tgt arch.ComponentType, kind EdgeType) bool {
		for _, e := range d.Edges {
			if typeOf(e.SourceID) == src && typeOf(e.TargetID) == tgt && e.Type == kind {
				return true
			}
		}
		return false
	}

	flow := arch.MainFlowTypes()
	for i := 1; i < len(flow); i++ {
		if !hasEdge(flow[i-1], flow[i], EdgeRequest) {
			t.Errorf("missing request edge %s to %s", flow[i-1], flow[i])
		}
	}
	if !hasEdge(arch.TypeDatabase, arch.TypeBackendLogic, EdgeResponse) {
		t.Error("missing response edge DATABASE to BACKEND_LOGIC")
	}
	if !hasEdge(arch.TypeClientCode, arch.TypeViewUpdate, EdgeResponse) {
		t.Error("missing response edge CLIENT_CODE to VIEW_UPDATE")
	}
	if !hasEdge(arch.TypeBackendLogic, arch.TypeEventHandler, EdgeRequest) {
		t.Error("missing request edge BACKEND_LOGIC to EVENT_HANDLER")
	}
	if !hasEdge(arch.TypeEventHandler, arch.TypeViewUpdate, EdgeResponse) {
		t.Error("missing response edge EVENT_HANDLER to VIEW_UPDATE")
	}
}

func TestBuildGeneratesIDsWhenMissing(t *testing.T) {
	d := testAssembler().Build(context.Background(), BuildInput{
		OperationID:   "op-1",
		OperationName: "Checkout",
	})
	if d.ID == "" {
		t.Error("expected a generated diagram ID")
	}
	another := testAssembler().Build(context.Background(), BuildInput{
		OperationID:   "op-1",
		OperationName: "Checkout",
	})
	if d.ID == another.ID {
		t.Error("generated diagram IDs should be unique")
	}
}

func TestBuildHonorsExplicitName(t *testing.T) {
	d := testAssembler().Build(context.Background(), BuildInput{
		OperationID:   "op-1",
		Name:          "Payment Path",
		OperationName: "Checkout",
	})
	if d.Name != "Payment Path" {
		t.Errorf("name = %q, want Payment Path", d.Name)
	}
}
