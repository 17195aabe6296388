package diagram

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// ExportFormat identifies a serialization format for diagram exports.
type ExportFormat string

const (
	// FormatJSON exports the diagram as an indented JSON document.
	FormatJSON ExportFormat = "json"
)

// IsValid returns true if the format is supported.
func (f ExportFormat) IsValid() bool {
	return f == FormatJSON
}

// String returns the string representation of the format.
func (f ExportFormat) String() string {
	return string(f)
}

// FileExtension returns the conventional file extension for the format,
// including the leading dot.
func (f ExportFormat) FileExtension() string {
	switch f {
	case FormatJSON:
		return ".json"
	default:
		return ""
	}
}

// MIMEType returns the media type for the format.
func (f ExportFormat) MIMEType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// ParseExportFormat converts a string to an ExportFormat, accepting any
// casing.
func ParseExportFormat(s string) (ExportFormat, error) {
	f := ExportFormat(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
	return f, nil
}

// AllExportFormats returns every supported export format.
func AllExportFormats() []ExportFormat {
	return []ExportFormat{FormatJSON}
}

// Metadata is the diagram-level header included in an export.
type Metadata struct {
	ID          string    `json:"id"`
	OperationID string    `json:"operationId"`
	Name        string    `json:"name"`
	Status      Status    `json:"status"`
	Viewport    Viewport  `json:"viewport"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Export is a self-contained snapshot of a diagram suitable for
// serialization: header, components, edges, and the export timestamp.
type Export struct {
	Diagram    Metadata    `json:"diagram"`
	Components []Component `json:"components"`
	Edges      []Edge      `json:"edges"`
	ExportedAt time.Time   `json:"exportedAt"`
}

// NewExport snapshots the diagram at the given time. The snapshot deep
// copies all content, so later diagram edits do not leak into it.
func NewExport(d *Diagram, now time.Time) *Export {
	snap := d.Clone()
	return &Export{
		Diagram: Metadata{
			ID:          snap.ID,
			OperationID: snap.OperationID,
			Name:        snap.Name,
			Status:      snap.Status,
			Viewport:    snap.Viewport,
			CreatedAt:   snap.CreatedAt,
		},
		Components: snap.Components,
		Edges:      snap.Edges,
		ExportedAt: now,
	}
}

// EncodeJSON writes the export as indented JSON.
func (e *Export) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
