package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/archmap-ai/sdk/arch"
	"github.com/archmap-ai/sdk/document"
)

// DefaultRelevanceThreshold is the minimum confidence a document must reach
// before a component type is considered to have supporting evidence.
const DefaultRelevanceThreshold = 0.25

// NoDataDescription is the fixed description carried by results with no
// supporting evidence.
const NoDataDescription = "No relevant data found in documents"

// Detection reports whether a document corpus holds evidence for one
// component type and how strong that evidence is.
type Detection struct {
	// HasData is true when at least one document crossed the relevance
	// threshold.
	HasData bool `json:"hasData"`

	// Confidence is the match strength of the best document, in [0, 1].
	// Zero whenever HasData is false.
	Confidence float64 `json:"confidence"`

	// RelevantDocument is the strongest-matching document, nil when none.
	RelevantDocument *document.Document `json:"relevantDocument,omitempty"`

	// MatchedKeywords lists the vocabulary terms found in the relevant
	// document.
	MatchedKeywords []string `json:"matchedKeywords,omitempty"`

	// Excerpt is a window of text around the first matched evidence.
	Excerpt string `json:"excerpt,omitempty"`
}

// Result is the extraction verdict for one component type. HasData=false
// forces Confidence to zero and Description to NoDataDescription.
type Result struct {
	ComponentType    arch.ComponentType `json:"componentType"`
	HasData          bool               `json:"hasData"`
	Confidence       float64            `json:"confidence"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	SourceExcerpt    string             `json:"sourceExcerpt,omitempty"`
	SourceDocumentID string             `json:"sourceDocumentId,omitempty"`

	// RelevantDocument is the document the verdict was derived from.
	// Not serialized; components keep only the ID and excerpt.
	RelevantDocument *document.Document `json:"-"`
}

// Engine scores document evidence per architecture component type.
//
// The engine is deliberately not a language model: relevance is estimated by
// matching each type's keyword vocabulary against document text. An optional
// Generator backend can refine the synthesized title and description, but the
// evidence verdict (HasData, Confidence, source fields) is always derived
// from the keyword scan. No input, however malformed, causes an error; the
// worst outcome for a type is a zero-confidence no-data result.
type Engine struct {
	logger    *slog.Logger
	threshold float64
	generator Generator
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a custom logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRelevanceThreshold overrides the minimum confidence required for a
// document to count as evidence. Values outside (0, 1] are ignored.
func WithRelevanceThreshold(threshold float64) Option {
	return func(e *Engine) {
		if threshold > 0 && threshold <= 1 {
			e.threshold = threshold
		}
	}
}

// WithGenerator sets an external generation backend used to refine titles
// and descriptions. The engine works fully without one.
func WithGenerator(g Generator) Option {
	return func(e *Engine) {
		e.generator = g
	}
}

// NewEngine creates an extraction engine with the provided options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		threshold: DefaultRelevanceThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// RelevanceThreshold returns the threshold the engine is operating with.
func (e *Engine) RelevanceThreshold() float64 {
	return e.threshold
}

// Keywords returns the evidence vocabulary for a component type.
func (e *Engine) Keywords(t arch.ComponentType) []string {
	return Keywords(t)
}

// PromptTemplate returns the generation instruction string for a component
// type.
func (e *Engine) PromptTemplate(t arch.ComponentType) string {
	return PromptTemplate(t)
}

// DetectComponentData scans the corpus for evidence of the given component
// type and returns the strongest verdict. An empty corpus, an unknown type,
// or a cancelled context all yield a no-data detection rather than an error.
func (e *Engine) DetectComponentData(ctx context.Context, t arch.ComponentType, docs []document.Document) Detection {
	keywords, ok := componentKeywords[t]
	if !ok || len(docs) == 0 {
		return Detection{}
	}

	var (
		best      docMatch
		bestConf  float64
		bestIndex = -1
	)
	for i := range docs {
		if ctx != nil && ctx.Err() != nil {
			break
		}
		m := matchDocument(docs[i].Content, keywords)
		conf := confidenceFor(m)
		if conf > bestConf {
			best = m
			bestConf = conf
			bestIndex = i
		}
	}

	if bestIndex < 0 || bestConf < e.threshold {
		return Detection{}
	}

	doc := docs[bestIndex]
	return Detection{
		HasData:          true,
		Confidence:       bestConf,
		RelevantDocument: &doc,
		MatchedKeywords:  best.matched,
		Excerpt:          excerptAround(doc.Content, best.firstIndex),
	}
}

// ExtractComponentDetails produces the full extraction result for one
// component type, synthesizing a title and description from the operation
// metadata and the matched evidence. It never returns an error.
func (e *Engine) ExtractComponentDetails(ctx context.Context, t arch.ComponentType, opName, opDesc string, docs []document.Document) Result {
	det := e.DetectComponentData(ctx, t, docs)
	if !det.HasData {
		return Result{
			ComponentType: t,
			HasData:       false,
			Confidence:    0,
			Title:         t.DisplayName(),
			Description:   NoDataDescription,
		}
	}

	res := Result{
		ComponentType:    t,
		HasData:          true,
		Confidence:       det.Confidence,
		Title:            synthesizeTitle(t, opName),
		Description:      synthesizeDescription(t, opName, opDesc, det),
		SourceExcerpt:    det.Excerpt,
		SourceDocumentID: det.RelevantDocument.ID,
		RelevantDocument: det.RelevantDocument,
	}

	if e.generator != nil {
		res = e.refineWithGenerator(ctx, t, res, docs)
	}
	return res
}

// ExtractAll runs extraction for every component type against the corpus.
// The returned map always contains all eleven types; with an empty corpus
// every entry reports HasData=false.
func (e *Engine) ExtractAll(ctx context.Context, opName, opDesc string, docs []document.Document) map[arch.ComponentType]Result {
	results := make(map[arch.ComponentType]Result, len(arch.AllComponentTypes()))
	for _, t := range arch.AllComponentTypes() {
		res := e.ExtractComponentDetails(ctx, t, opName, opDesc, docs)
		results[t] = res
		e.logger.Debug("component extracted",
			slog.String("component_type", t.String()),
			slog.Bool("has_data", res.HasData),
			slog.Float64("confidence", res.Confidence),
		)
	}
	return results
}

// synthesizeTitle builds a component title from the type and operation name.
func synthesizeTitle(t arch.ComponentType, opName string) string {
	if opName == "" {
		return t.DisplayName()
	}
	return fmt.Sprintf("%s for %s", t.DisplayName(), opName)
}

// synthesizeDescription composes a description from the operation metadata
// and the matched evidence. The document text itself is quoted only through
// the excerpt, never copied wholesale.
func synthesizeDescription(t arch.ComponentType, opName, opDesc string, det Detection) string {
	opLabel := opName
	if opLabel == "" {
		opLabel = "this operation"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Covers the %s stage of %s", strings.ToLower(t.DisplayName()), opLabel)
	if opDesc != "" {
		fmt.Fprintf(&b, " (%s)", truncate(opDesc, 90))
	}
	b.WriteString(".")
	if det.RelevantDocument != nil && len(det.MatchedKeywords) > 0 {
		fmt.Fprintf(&b, " Supporting evidence in %s: %s.",
			det.RelevantDocument.Filename, strings.Join(det.MatchedKeywords, ", "))
	}
	return b.String()
}

// truncate shortens s to at most n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}
