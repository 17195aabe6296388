// Package operation defines the operations diagrams are generated for and
// the resolver abstraction the pipeline loads them through.
//
// The pipeline itself never stores operations or documents; it asks a
// Resolver at generation time. StaticResolver is an in-memory
// implementation for embedding and tests; production callers typically
// adapt their own catalog service to the interface.
package operation

import (
	"context"
	"errors"
	"sync"

	"github.com/archmap-ai/sdk/document"
)

// ErrNotFound is returned when an operation ID is not known to a resolver.
var ErrNotFound = errors.New("operation: not found")

// Operation is a user-facing flow whose architecture gets diagrammed.
type Operation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Resolver loads operations and their document corpora.
type Resolver interface {
	// Resolve returns the operation with the given ID, or ErrNotFound.
	Resolve(ctx context.Context, operationID string) (*Operation, error)

	// Documents returns the evidence corpus attached to the operation,
	// or ErrNotFound when the operation is unknown. An empty corpus is
	// a valid result.
	Documents(ctx context.Context, operationID string) ([]document.Document, error)
}

// StaticResolver is a Resolver backed by in-process maps. Safe for
// concurrent use.
type StaticResolver struct {
	mu   sync.RWMutex
	ops  map[string]Operation
	docs map[string][]document.Document
}

// NewStaticResolver creates an empty resolver.
func NewStaticResolver() *StaticResolver {
	return &StaticResolver{
		ops:  make(map[string]Operation),
		docs: make(map[string][]document.Document),
	}
}

// Add registers an operation with its document corpus, replacing any
// previous registration under the same ID.
func (r *StaticResolver) Add(op Operation, docs ...document.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops[op.ID] = op
	r.docs[op.ID] = append([]document.Document(nil), docs...)
}

// Resolve implements Resolver.
func (r *StaticResolver) Resolve(_ context.Context, operationID string) (*Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.ops[operationID]
	if !ok {
		return nil, ErrNotFound
	}
	return &op, nil
}

// Documents implements Resolver.
func (r *StaticResolver) Documents(_ context.Context, operationID string) ([]document.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs, ok := r.docs[operationID]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]document.Document(nil), docs...), nil
}
