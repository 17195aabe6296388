package diagram

import (
	"testing"

	"github.com/archmap-ai/sdk/arch"
)

func TestStatusIsValid(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, true},
		{StatusCompleted, true},
		{StatusFailed, true},
		{Status("DRAFT"), false},
		{Status(""), false},
	}
	for _, tt := range tests {
		if got := tt.status.IsValid(); got != tt.want {
			t.Errorf("Status(%q).IsValid() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestStatusIsTerminal(t *testing.T) {
	if StatusPending.IsTerminal() {
		t.Error("PENDING should not be terminal")
	}
	if !StatusCompleted.IsTerminal() {
		t.Error("COMPLETED should be terminal")
	}
	if !StatusFailed.IsTerminal() {
		t.Error("FAILED should be terminal")
	}
}

func TestComponentStatusIsValid(t *testing.T) {
	for _, s := range []ComponentStatus{ComponentPopulated, ComponentGreyedOut, ComponentUserModified} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if ComponentStatus("HIDDEN").IsValid() {
		t.Error("HIDDEN should not be valid")
	}
}

func TestEdgeTypeIsValid(t *testing.T) {
	if !EdgeRequest.IsValid() || !EdgeResponse.IsValid() {
		t.Error("REQUEST and RESPONSE should be valid")
	}
	if EdgeType("BIDIRECTIONAL").IsValid() {
		t.Error("BIDIRECTIONAL should not be valid")
	}
}

func TestComponentClone(t *testing.T) {
	orig := "original title"
	c := &Component{
		ID:            "c-1",
		Type:          arch.TypeDatabase,
		Title:         "edited title",
		OriginalTitle: &orig,
	}

	clone := c.Clone()
	if clone == c {
		t.Fatal("Clone returned the same pointer")
	}
	if clone.OriginalTitle == c.OriginalTitle {
		t.Error("Clone shares the OriginalTitle pointer")
	}
	*clone.OriginalTitle = "mutated"
	if *c.OriginalTitle != "original title" {
		t.Error("mutating the clone leaked into the original")
	}

	var nilComponent *Component
	if nilComponent.Clone() != nil {
		t.Error("cloning nil should return nil")
	}
}

func TestDiagramClone(t *testing.T) {
	d := &Diagram{
		ID:     "d-1",
		Status: StatusCompleted,
		Components: []Component{
			{ID: "c-1", Type: arch.TypeDatabase, Title: "Database"},
		},
		Edges: []Edge{
			{ID: "e-1", SourceID: "c-1", TargetID: "c-1", Type: EdgeRequest, Label: "self"},
		},
	}

	clone := d.Clone()
	clone.Components[0].Title = "mutated"
	clone.Edges[0].Label = "mutated"
	if d.Components[0].Title != "Database" {
		t.Error("component mutation leaked into the original")
	}
	if d.Edges[0].Label != "self" {
		t.Error("edge mutation leaked into the original")
	}

	var nilDiagram *Diagram
	if nilDiagram.Clone() != nil {
		t.Error("cloning nil should return nil")
	}
}

func TestComponentLookups(t *testing.T) {
	d := &Diagram{
		Components: []Component{
			{ID: "c-1", Type: arch.TypeUserAction},
			{ID: "c-2", Type: arch.TypeDatabase},
		},
	}

	if got := d.ComponentByID("c-2"); got == nil || got.Type != arch.TypeDatabase {
		t.Errorf("ComponentByID(c-2) = %+v", got)
	}
	if got := d.ComponentByID("missing"); got != nil {
		t.Errorf("expected nil for missing ID, got %+v", got)
	}
	if got := d.ComponentByType(arch.TypeUserAction); got == nil || got.ID != "c-1" {
		t.Errorf("ComponentByType(USER_ACTION) = %+v", got)
	}
	if got := d.ComponentByType(arch.TypeFirewall); got != nil {
		t.Errorf("expected nil for absent type, got %+v", got)
	}
}
