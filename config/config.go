// Package config provides loading and parsing of archmap.yaml configuration files.
// Archmap configurations define logging, pipeline, extraction, history, and
// scoring settings for an embedded diagram pipeline.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents an archmap.yaml configuration file.
// Every section is optional; accessors return defaults for absent sections.
type Config struct {
	// Identity
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`

	// Logging configuration
	Logging *LoggingConfig `yaml:"logging,omitempty"`

	// Pipeline configuration (generation concurrency and pacing)
	Pipeline *PipelineConfig `yaml:"pipeline,omitempty"`

	// Extraction configuration
	Extraction *ExtractionConfig `yaml:"extraction,omitempty"`

	// History backend configuration
	History *HistoryConfig `yaml:"history,omitempty"`

	// Scoring weight overrides
	Scoring *ScoringConfig `yaml:"scoring,omitempty"`
}

// LoggingConfig controls the pipeline's slog output.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", or "error".
	// Default: info
	Level string `yaml:"level,omitempty"`

	// Format selects the handler: "json" or "text".
	// Default: json
	Format string `yaml:"format,omitempty"`
}

// GetLevel parses the configured level.
// Returns the default value if not set or invalid.
func (l *LoggingConfig) GetLevel() slog.Level {
	if l == nil {
		return slog.LevelInfo
	}
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetFormat returns the configured handler format or the default value.
func (l *LoggingConfig) GetFormat() string {
	if l == nil {
		return "json"
	}
	if strings.ToLower(l.Format) == "text" {
		return "text"
	}
	return "json"
}

// PipelineConfig controls generation job execution.
type PipelineConfig struct {
	// MaxConcurrentJobs is the number of generation jobs processed at once.
	// Jobs beyond the limit stay pending until a slot frees up.
	// Default: 4
	MaxConcurrentJobs int `yaml:"max_concurrent_jobs,omitempty"`

	// CompletionDelay is the pause between a diagram finishing and its job
	// reporting completion, so pollers observe the final progress step.
	// Format: Go duration string (e.g., "150ms", "1s")
	// Default: 150ms
	CompletionDelay string `yaml:"completion_delay,omitempty"`
}

// GetMaxConcurrentJobs returns the configured concurrency or the default value.
func (p *PipelineConfig) GetMaxConcurrentJobs() int {
	if p == nil || p.MaxConcurrentJobs <= 0 {
		return 4
	}
	return p.MaxConcurrentJobs
}

// GetCompletionDelay parses the completion delay string and returns a duration.
// Returns the default value if not set or invalid.
func (p *PipelineConfig) GetCompletionDelay() time.Duration {
	if p == nil || p.CompletionDelay == "" {
		return 150 * time.Millisecond
	}
	d, err := time.ParseDuration(p.CompletionDelay)
	if err != nil || d < 0 {
		return 150 * time.Millisecond
	}
	return d
}

// ExtractionConfig controls keyword detection.
type ExtractionConfig struct {
	// RelevanceThreshold is the minimum confidence for a document match to
	// populate a component. Must be in (0, 1].
	// Default: 0.25
	RelevanceThreshold float64 `yaml:"relevance_threshold,omitempty"`
}

// GetRelevanceThreshold returns the configured threshold or the default value.
func (e *ExtractionConfig) GetRelevanceThreshold() float64 {
	if e == nil || e.RelevanceThreshold <= 0 || e.RelevanceThreshold > 1 {
		return 0.25
	}
	return e.RelevanceThreshold
}

// HistoryConfig selects and configures the validation-run store.
type HistoryConfig struct {
	// Backend is one of "memory", "redis", or "sqlite".
	// Default: memory
	Backend string `yaml:"backend,omitempty"`

	// RedisURL is the connection URL for the redis backend.
	// Default: redis://localhost:6379
	RedisURL string `yaml:"redis_url,omitempty"`

	// SQLitePath is the database file path for the sqlite backend.
	SQLitePath string `yaml:"sqlite_path,omitempty"`
}

// GetBackend returns the configured backend name or the default value.
func (h *HistoryConfig) GetBackend() string {
	if h == nil || h.Backend == "" {
		return "memory"
	}
	return strings.ToLower(h.Backend)
}

// GetRedisURL returns the configured redis URL, which may be empty.
func (h *HistoryConfig) GetRedisURL() string {
	if h == nil {
		return ""
	}
	return h.RedisURL
}

// GetSQLitePath returns the configured sqlite path, which may be empty.
func (h *HistoryConfig) GetSQLitePath() string {
	if h == nil {
		return ""
	}
	return h.SQLitePath
}

// ScoringConfig overrides component-type score weights.
type ScoringConfig struct {
	// Weights maps component type names to multipliers. Entries merge over
	// the built-in weights rather than replacing them.
	Weights map[string]float64 `yaml:"weights,omitempty"`
}

// GetWeights returns the configured weight overrides, which may be nil.
func (s *ScoringConfig) GetWeights() map[string]float64 {
	if s == nil {
		return nil
	}
	return s.Weights
}

// Load reads and parses an archmap.yaml file from the given path.
// If the path is a directory, it looks for archmap.yaml or archmap.yml in
// that directory.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	var configPath string
	if info.IsDir() {
		// Try archmap.yaml first, then archmap.yml
		yamlPath := filepath.Join(path, "archmap.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			configPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "archmap.yml")
			if _, err := os.Stat(ymlPath); err == nil {
				configPath = ymlPath
			} else {
				return nil, fmt.Errorf("no archmap.yaml or archmap.yml found in %s", path)
			}
		}
	} else {
		configPath = path
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// LoadFromDir searches for archmap.yaml starting from the given directory
// and walking up to parent directories until found or root is reached.
func LoadFromDir(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		config, err := Load(absDir)
		if err == nil {
			return config, nil
		}

		// Move to parent directory
		parent := filepath.Dir(absDir)
		if parent == absDir {
			// Reached root
			return nil, fmt.Errorf("no archmap.yaml found in %s or parent directories", dir)
		}
		absDir = parent
	}
}

// LoadFromCurrentDir loads archmap.yaml from the current working directory.
func LoadFromCurrentDir() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadFromDir(cwd)
}
