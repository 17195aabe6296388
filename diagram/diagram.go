package diagram

import (
	"time"

	"github.com/archmap-ai/sdk/arch"
)

// Status represents the lifecycle state of a diagram.
type Status string

const (
	// StatusPending indicates the diagram exists but synthesis has not
	// finished populating it.
	StatusPending Status = "PENDING"

	// StatusCompleted indicates the diagram was fully synthesized.
	StatusCompleted Status = "COMPLETED"

	// StatusFailed indicates synthesis failed and the diagram holds no
	// usable content.
	StatusFailed Status = "FAILED"
)

// IsValid returns true if the status is a recognized diagram status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the status is a final state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ComponentStatus describes how a component's content was established.
type ComponentStatus string

const (
	// ComponentPopulated marks a component filled from document evidence.
	ComponentPopulated ComponentStatus = "POPULATED"

	// ComponentGreyedOut marks a placeholder with no supporting evidence.
	ComponentGreyedOut ComponentStatus = "GREYED_OUT"

	// ComponentUserModified marks a component whose content was edited by
	// hand after synthesis.
	ComponentUserModified ComponentStatus = "USER_MODIFIED"
)

// IsValid returns true if the status is a recognized component status.
func (s ComponentStatus) IsValid() bool {
	switch s {
	case ComponentPopulated, ComponentGreyedOut, ComponentUserModified:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s ComponentStatus) String() string {
	return string(s)
}

// EdgeType classifies the direction of a connection in the flow.
type EdgeType string

const (
	// EdgeRequest marks an edge on the forward request path.
	EdgeRequest EdgeType = "REQUEST"

	// EdgeResponse marks an edge on the return path.
	EdgeResponse EdgeType = "RESPONSE"
)

// IsValid returns true if the edge type is recognized.
func (t EdgeType) IsValid() bool {
	return t == EdgeRequest || t == EdgeResponse
}

// String returns the string representation of the edge type.
func (t EdgeType) String() string {
	return string(t)
}

// Position is a component's coordinate on the canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Viewport is the visible region and zoom level of the canvas.
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// Component is one architecture element placed on a diagram.
type Component struct {
	ID               string             `json:"id"`
	DiagramID        string             `json:"diagramId"`
	Type             arch.ComponentType `json:"type"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Status           ComponentStatus    `json:"status"`
	Confidence       float64            `json:"confidence"`
	Position         Position           `json:"position"`
	SourceExcerpt    string             `json:"sourceExcerpt,omitempty"`
	SourceDocumentID string             `json:"sourceDocumentId,omitempty"`

	// IsUserModified is true once the component was edited by hand.
	// OriginalTitle and OriginalDescription hold the pre-edit content
	// for as long as the edit stands; reset clears them.
	IsUserModified      bool    `json:"isUserModified"`
	OriginalTitle       *string `json:"originalTitle,omitempty"`
	OriginalDescription *string `json:"originalDescription,omitempty"`
}

// Clone returns a deep copy of the component.
func (c *Component) Clone() *Component {
	if c == nil {
		return nil
	}
	out := *c
	out.OriginalTitle = cloneStringPtr(c.OriginalTitle)
	out.OriginalDescription = cloneStringPtr(c.OriginalDescription)
	return &out
}

// Edge is a directed, labeled connection between two components.
type Edge struct {
	ID        string   `json:"id"`
	DiagramID string   `json:"diagramId"`
	SourceID  string   `json:"sourceId"`
	TargetID  string   `json:"targetId"`
	Type      EdgeType `json:"type"`
	Label     string   `json:"label"`
}

// Diagram is a synthesized architecture diagram for one operation.
type Diagram struct {
	ID          string      `json:"id"`
	OperationID string      `json:"operationId"`
	Name        string      `json:"name"`
	Status      Status      `json:"status"`
	Components  []Component `json:"components"`
	Edges       []Edge      `json:"edges"`
	Viewport    Viewport    `json:"viewport"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Clone returns a deep copy of the diagram.
func (d *Diagram) Clone() *Diagram {
	if d == nil {
		return nil
	}
	out := *d
	if d.Components != nil {
		out.Components = make([]Component, len(d.Components))
		for i := range d.Components {
			out.Components[i] = *d.Components[i].Clone()
		}
	}
	if d.Edges != nil {
		out.Edges = make([]Edge, len(d.Edges))
		copy(out.Edges, d.Edges)
	}
	return &out
}

// ComponentByID returns a pointer to the component with the given ID, nil if
// absent. The pointer aliases the diagram's backing slice.
func (d *Diagram) ComponentByID(id string) *Component {
	for i := range d.Components {
		if d.Components[i].ID == id {
			return &d.Components[i]
		}
	}
	return nil
}

// ComponentByType returns a pointer to the component of the given type, nil
// if absent.
func (d *Diagram) ComponentByType(t arch.ComponentType) *Component {
	for i := range d.Components {
		if d.Components[i].Type == t {
			return &d.Components[i]
		}
	}
	return nil
}

// Update carries the mutable diagram-level fields. Nil fields are left
// untouched.
type Update struct {
	Name     *string   `json:"name,omitempty"`
	Viewport *Viewport `json:"viewport,omitempty"`
}

// ComponentUpdate carries the editable component fields. Nil fields are left
// untouched.
type ComponentUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
