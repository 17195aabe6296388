package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// ConnectTimeout is the maximum time to wait for connection establishment
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations
	WriteTimeout time.Duration
}

// RedisStore keeps run history in Redis lists, one list per diagram, capped
// at MaxRunsPerDiagram entries.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed history store and verifies the
// connection.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}

	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}

	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// runsKey builds the list key holding a diagram's run history.
func runsKey(diagramID string) string {
	return "archmap:runs:" + diagramID
}

// RecordRun implements Store. New runs are pushed to the head of the list,
// which is then trimmed to MaxRunsPerDiagram.
func (s *RedisStore) RecordRun(ctx context.Context, run Run) error {
	if run.DiagramID == "" {
		return ErrInvalidRun
	}

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	key := runsKey(run.DiagramID)
	if err := s.client.LPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("failed to push run for diagram %s: %w", run.DiagramID, err)
	}

	if err := s.client.LTrim(ctx, key, 0, MaxRunsPerDiagram-1).Err(); err != nil {
		return fmt.Errorf("failed to trim runs for diagram %s: %w", run.DiagramID, err)
	}

	return nil
}

// RecentRuns implements Store. Entries that fail to decode are skipped.
func (s *RedisStore) RecentRuns(ctx context.Context, diagramID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultRunLimit
	}

	entries, err := s.client.LRange(ctx, runsKey(diagramID), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read runs for diagram %s: %w", diagramID, err)
	}

	runs := make([]Run, 0, len(entries))
	for _, entry := range entries {
		var run Run
		if err := json.Unmarshal([]byte(entry), &run); err != nil {
			// Skip entries that no longer decode
			continue
		}
		runs = append(runs, run)
	}

	return runs, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
