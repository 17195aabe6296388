package diagram

import (
	"fmt"

	"github.com/archmap-ai/sdk/arch"
)

// Issue describes a single structural defect found in a diagram.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error returns the issue formatted as "field: message".
func (i Issue) Error() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// Validate checks the diagram against the structural contract every
// synthesized diagram must satisfy and returns all violations found. A nil
// return means the diagram is structurally sound.
func (d *Diagram) Validate() []Issue {
	var issues []Issue

	if !d.Status.IsValid() {
		issues = append(issues, Issue{
			Field:   "status",
			Message: fmt.Sprintf("unknown diagram status %q", d.Status),
		})
	}

	want := arch.AllComponentTypes()
	if len(d.Components) != len(want) {
		issues = append(issues, Issue{
			Field:   "components",
			Message: fmt.Sprintf("expected %d components, found %d", len(want), len(d.Components)),
		})
	}

	byType := make(map[arch.ComponentType]*Component, len(d.Components))
	byID := make(map[string]*Component, len(d.Components))
	positions := make(map[Position]arch.ComponentType, len(d.Components))
	for i := range d.Components {
		c := &d.Components[i]
		field := fmt.Sprintf("components[%d]", i)

		if !c.Type.IsValid() {
			issues = append(issues, Issue{
				Field:   field + ".type",
				Message: fmt.Sprintf("unknown component type %q", c.Type),
			})
		}
		if prev, ok := byType[c.Type]; ok {
			issues = append(issues, Issue{
				Field:   field + ".type",
				Message: fmt.Sprintf("duplicate component type %s (first %s)", c.Type, prev.ID),
			})
		} else {
			byType[c.Type] = c
		}

		if c.ID == "" {
			issues = append(issues, Issue{
				Field:   field + ".id",
				Message: "component has no id",
			})
		}
		byID[c.ID] = c

		if !c.Status.IsValid() {
			issues = append(issues, Issue{
				Field:   field + ".status",
				Message: fmt.Sprintf("unknown component status %q", c.Status),
			})
		}
		if c.Confidence < 0 || c.Confidence > 1 {
			issues = append(issues, Issue{
				Field:   field + ".confidence",
				Message: fmt.Sprintf("confidence %g outside [0, 1]", c.Confidence),
			})
		}
		if owner, ok := positions[c.Position]; ok {
			issues = append(issues, Issue{
				Field:   field + ".position",
				Message: fmt.Sprintf("position occupied by %s", owner),
			})
		} else {
			positions[c.Position] = c.Type
		}
	}

	for _, t := range want {
		if _, ok := byType[t]; !ok {
			issues = append(issues, Issue{
				Field:   "components",
				Message: fmt.Sprintf("missing component type %s", t),
			})
		}
	}

	issues = append(issues, d.validateMainFlowLayout(byType)...)
	issues = append(issues, d.validateEdges(byID, byType)...)
	return issues
}

// validateMainFlowLayout checks that main-flow components advance strictly
// left to right in flow order.
func (d *Diagram) validateMainFlowLayout(byType map[arch.ComponentType]*Component) []Issue {
	var issues []Issue
	flow := arch.MainFlowTypes()
	for i := 1; i < len(flow); i++ {
		prev, prevOK := byType[flow[i-1]]
		cur, curOK := byType[flow[i]]
		if !prevOK || !curOK {
			continue
		}
		if cur.Position.X <= prev.Position.X {
			issues = append(issues, Issue{
				Field: "components",
				Message: fmt.Sprintf("main flow out of order: %s at x=%g does not advance past %s at x=%g",
					flow[i], cur.Position.X, flow[i-1], prev.Position.X),
			})
		}
	}
	return issues
}

// validateEdges checks endpoint integrity, labeling, and the presence of
// the canonical request and response chains.
func (d *Diagram) validateEdges(byID map[string]*Component, byType map[arch.ComponentType]*Component) []Issue {
	var issues []Issue

	type link struct {
		source arch.ComponentType
		target arch.ComponentType
		kind   EdgeType
	}
	present := make(map[link]bool, len(d.Edges))
	incident := make(map[string]int, len(d.Components))

	for i := range d.Edges {
		e := &d.Edges[i]
		field := fmt.Sprintf("edges[%d]", i)

		if !e.Type.IsValid() {
			issues = append(issues, Issue{
				Field:   field + ".type",
				Message: fmt.Sprintf("unknown edge type %q", e.Type),
			})
		}
		if e.Label == "" {
			issues = append(issues, Issue{
				Field:   field + ".label",
				Message: "edge has no label",
			})
		}

		src, srcOK := byID[e.SourceID]
		if !srcOK {
			issues = append(issues, Issue{
				Field:   field + ".sourceId",
				Message: fmt.Sprintf("references unknown component %q", e.SourceID),
			})
		}
		tgt, tgtOK := byID[e.TargetID]
		if !tgtOK {
			issues = append(issues, Issue{
				Field:   field + ".targetId",
				Message: fmt.Sprintf("references unknown component %q", e.TargetID),
			})
		}
		if srcOK && tgtOK {
			present[link{src.Type, tgt.Type, e.Type}] = true
			incident[e.SourceID]++
			incident[e.TargetID]++
		}
	}

	flow := arch.MainFlowTypes()
	for i := 1; i < len(flow); i++ {
		if !present[link{flow[i-1], flow[i], EdgeRequest}] {
			issues = append(issues, Issue{
				Field:   "edges",
				Message: fmt.Sprintf("request chain missing %s to %s", flow[i-1], flow[i]),
			})
		}
	}
	if !present[link{arch.TypeDatabase, arch.TypeBackendLogic, EdgeResponse}] {
		issues = append(issues, Issue{
			Field:   "edges",
			Message: "response chain missing DATABASE to BACKEND_LOGIC",
		})
	}

	for _, t := range arch.AuxiliaryTypes() {
		c, ok := byType[t]
		if !ok {
			continue
		}
		if incident[c.ID] == 0 {
			issues = append(issues, Issue{
				Field:   "edges",
				Message: fmt.Sprintf("%s has no incident edges", t),
			})
		}
	}
	return issues
}
