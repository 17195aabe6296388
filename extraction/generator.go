package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/archmap-ai/sdk/arch"
	"github.com/archmap-ai/sdk/document"
)

// Generator produces structured text from a prompt, typically backed by an
// external model service. Implementations must be safe for concurrent use.
type Generator interface {
	// Generate returns the raw completion for the prompt. The engine
	// expects a single JSON object matching the prompt template's schema.
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// generatedDetails is the JSON reply shape a generation backend must
// produce, mirroring the schema embedded in PromptTemplate.
type generatedDetails struct {
	HasData       bool    `json:"hasData"`
	Confidence    float64 `json:"confidence"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	SourceExcerpt string  `json:"sourceExcerpt"`
}

// Document content included in a generation prompt is capped per document so
// oversized corpora cannot blow up the request.
const promptDocumentLimit = 1500

// refineWithGenerator asks the configured backend to improve the heuristic
// title and description. The evidence verdict (HasData, Confidence, source
// fields) stays keyword-derived regardless of what the backend replies.
// Backend failures and unparseable replies leave the result unchanged.
func (e *Engine) refineWithGenerator(ctx context.Context, t arch.ComponentType, res Result, docs []document.Document) Result {
	out, err := e.generator.Generate(ctx, buildPrompt(t, docs))
	if err != nil {
		e.logger.Debug("generator unavailable, keeping heuristic details",
			slog.String("component_type", t.String()),
			slog.String("error", err.Error()),
		)
		return res
	}

	var gd generatedDetails
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &gd); err != nil {
		e.logger.Debug("generator reply is not valid JSON, keeping heuristic details",
			slog.String("component_type", t.String()),
			slog.String("error", err.Error()),
		)
		return res
	}

	if gd.Title != "" {
		res.Title = gd.Title
	}
	if gd.Description != "" {
		res.Description = gd.Description
	}
	return res
}

// buildPrompt combines the component's template with the document corpus.
func buildPrompt(t arch.ComponentType, docs []document.Document) string {
	var b strings.Builder
	b.WriteString(PromptTemplate(t))
	b.WriteString("\n\nDocuments:\n")
	for _, doc := range docs {
		fmt.Fprintf(&b, "--- %s ---\n%s\n", doc.Filename, truncate(doc.Content, promptDocumentLimit))
	}
	return b.String()
}
