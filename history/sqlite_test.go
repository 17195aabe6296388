package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestNewSQLiteStore(t *testing.T) {
	t.Run("in-memory database", func(t *testing.T) {
		store := setupSQLiteStore(t)
		require.NotNil(t, store)
	})

	t.Run("file database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "runs.db")
		store, err := NewSQLiteStore(path)
		require.NoError(t, err)
		assert.NoError(t, store.Close())
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := NewSQLiteStore("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sqlite path required")
	})
}

func TestSQLiteStoreRecordAndRecent(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.RecordRun(ctx, makeRun("diag-1", i)))
	}

	runs, err := store.RecentRuns(ctx, "diag-1", 10)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// Newest first
	assert.Equal(t, "run-diag-1-2", runs[0].ID)
	assert.Equal(t, "run-diag-1-0", runs[2].ID)
	assert.Equal(t, 52, runs[0].Score)
	assert.Equal(t, 11, runs[0].ComponentCount)
	assert.True(t, runs[0].CompletedAt.Equal(makeRun("diag-1", 2).CompletedAt))
}

func TestSQLiteStoreLimit(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		require.NoError(t, store.RecordRun(ctx, makeRun("diag-1", i)))
	}

	runs, err := store.RecentRuns(ctx, "diag-1", 5)
	require.NoError(t, err)
	require.Len(t, runs, 5)
	assert.Equal(t, "run-diag-1-14", runs[0].ID)

	runs, err = store.RecentRuns(ctx, "diag-1", 0)
	require.NoError(t, err)
	assert.Len(t, runs, DefaultRunLimit)
}

func TestSQLiteStoreIsolatesDiagrams(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordRun(ctx, makeRun("diag-1", 0)))
	require.NoError(t, store.RecordRun(ctx, makeRun("diag-2", 0)))

	runs, err := store.RecentRuns(ctx, "diag-1", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "diag-1", runs[0].DiagramID)
}

func TestSQLiteStoreUnknownDiagram(t *testing.T) {
	store := setupSQLiteStore(t)

	runs, err := store.RecentRuns(context.Background(), "missing", 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSQLiteStoreInvalidRun(t *testing.T) {
	store := setupSQLiteStore(t)

	err := store.RecordRun(context.Background(), Run{ID: "run-1"})
	assert.ErrorIs(t, err, ErrInvalidRun)
}

func TestSQLiteStorePersistsAcrossConnections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	ctx := context.Background()

	first, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.RecordRun(ctx, makeRun("diag-1", 0)))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer second.Close()

	runs, err := second.RecentRuns(ctx, "diag-1", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-diag-1-0", runs[0].ID)
}
