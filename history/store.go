package history

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Common errors returned by history operations.
var (
	// ErrInvalidRun is returned when a run carries no diagram ID.
	ErrInvalidRun = errors.New("history: run has no diagram id")

	// ErrUnknownBackend is returned by NewStore for an unrecognized
	// backend name.
	ErrUnknownBackend = errors.New("history: unknown backend")
)

// DefaultRunLimit caps RecentRuns when the caller passes no limit.
const DefaultRunLimit = 10

// MaxRunsPerDiagram bounds how much history a single diagram accumulates in
// capped backends.
const MaxRunsPerDiagram = 100

// Run is one recorded validation outcome for a diagram.
type Run struct {
	ID             string    `json:"id"`
	DiagramID      string    `json:"diagramId"`
	Score          int       `json:"score"`
	ComponentCount int       `json:"componentCount"`
	CompletedAt    time.Time `json:"completedAt"`
}

// Store persists validation runs and serves them back newest first.
type Store interface {
	// RecordRun appends a run to its diagram's history.
	// Returns ErrInvalidRun if the run has no diagram ID.
	RecordRun(ctx context.Context, run Run) error

	// RecentRuns returns up to limit runs for the diagram, newest first.
	// A limit of zero or less applies DefaultRunLimit. Unknown diagrams
	// yield an empty slice, not an error.
	RecentRuns(ctx context.Context, diagramID string, limit int) ([]Run, error)

	// Close releases the store's resources.
	Close() error
}

// Backend names a history store implementation.
type Backend string

const (
	// BackendMemory keeps runs in process memory.
	BackendMemory Backend = "memory"

	// BackendRedis keeps runs in Redis lists.
	BackendRedis Backend = "redis"

	// BackendSQLite keeps runs in a SQLite database.
	BackendSQLite Backend = "sqlite"
)

// Options configures NewStore.
type Options struct {
	// Backend selects the implementation. Empty defaults to memory.
	Backend Backend

	// RedisURL is the connection string for the redis backend.
	RedisURL string

	// SQLitePath is the database path for the sqlite backend.
	SQLitePath string
}

// NewStore builds the history store named by opts.Backend.
func NewStore(opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendRedis:
		return NewRedisStore(RedisOptions{URL: opts.RedisURL})
	case BackendSQLite:
		return NewSQLiteStore(opts.SQLitePath)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// MemoryStore keeps run history in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string][]Run
}

// NewMemoryStore creates an empty in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs: make(map[string][]Run),
	}
}

// RecordRun implements Store. Runs are kept oldest first internally; the
// per-diagram history is capped at MaxRunsPerDiagram, dropping the oldest.
func (s *MemoryStore) RecordRun(_ context.Context, run Run) error {
	if run.DiagramID == "" {
		return ErrInvalidRun
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	runs := append(s.runs[run.DiagramID], run)
	if len(runs) > MaxRunsPerDiagram {
		runs = runs[len(runs)-MaxRunsPerDiagram:]
	}
	s.runs[run.DiagramID] = runs
	return nil
}

// RecentRuns implements Store.
func (s *MemoryStore) RecentRuns(_ context.Context, diagramID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultRunLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := s.runs[diagramID]
	if len(runs) == 0 {
		return []Run{}, nil
	}
	if limit > len(runs) {
		limit = len(runs)
	}

	out := make([]Run, 0, limit)
	for i := len(runs) - 1; i >= len(runs)-limit; i-- {
		out = append(out, runs[i])
	}
	return out, nil
}

// Close implements Store. It is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
