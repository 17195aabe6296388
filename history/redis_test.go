package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a miniredis instance and returns a connected
// RedisStore.
func setupTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := NewRedisStore(RedisOptions{
		URL:            fmt.Sprintf("redis://%s", mr.Addr()),
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
		mr.Close()
	})

	return store, mr
}

func TestNewRedisStore(t *testing.T) {
	t.Run("successful connection", func(t *testing.T) {
		mr := miniredis.RunT(t)
		defer mr.Close()

		store, err := NewRedisStore(RedisOptions{
			URL: fmt.Sprintf("redis://%s", mr.Addr()),
		})
		require.NoError(t, err)
		require.NotNil(t, store)
		defer store.Close()
	})

	t.Run("connection failure", func(t *testing.T) {
		_, err := NewRedisStore(RedisOptions{
			URL:            "redis://localhost:99999",
			ConnectTimeout: 100 * time.Millisecond,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to Redis")
	})

	t.Run("invalid URL", func(t *testing.T) {
		_, err := NewRedisStore(RedisOptions{
			URL: "invalid://url",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse Redis URL")
	})
}

func TestRedisStoreRecordAndRecent(t *testing.T) {
	store, _ := setupTestStore(t)
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

func TestRedisStoreLimit(t *testing.T) {
	store, _ := setupTestStore(t)
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

func TestRedisStoreCapsHistory(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	total := MaxRunsPerDiagram + 3
	for i := 0; i < total; i++ {
		require.NoError(t, store.RecordRun(ctx, makeRun("diag-1", i)))
	}

	runs, err := store.RecentRuns(ctx, "diag-1", total)
	require.NoError(t, err)
	assert.Len(t, runs, MaxRunsPerDiagram)
	assert.Equal(t, fmt.Sprintf("run-diag-1-%d", total-1), runs[0].ID)
}

func TestRedisStoreSkipsCorruptEntries(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordRun(ctx, makeRun("diag-1", 0)))
	_, err := mr.Lpush(runsKey("diag-1"), "not json at all")
	require.NoError(t, err)
	require.NoError(t, store.RecordRun(ctx, makeRun("diag-1", 1)))

	runs, err := store.RecentRuns(ctx, "diag-1", 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-diag-1-1", runs[0].ID)
	assert.Equal(t, "run-diag-1-0", runs[1].ID)
}

func TestRedisStoreUnknownDiagram(t *testing.T) {
	store, _ := setupTestStore(t)

	runs, err := store.RecentRuns(context.Background(), "missing", 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRedisStoreInvalidRun(t *testing.T) {
	store, _ := setupTestStore(t)

	err := store.RecordRun(context.Background(), Run{ID: "run-1"})
	assert.ErrorIs(t, err, ErrInvalidRun)
}

func TestRedisStoreIsolatesDiagrams(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordRun(ctx, makeRun("diag-1", 0)))
	require.NoError(t, store.RecordRun(ctx, makeRun("diag-2", 0)))

	runs, err := store.RecentRuns(ctx, "diag-2", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "diag-2", runs[0].DiagramID)
}
