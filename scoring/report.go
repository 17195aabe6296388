package scoring

import (
	"fmt"
	"time"
)

// HealthStatus is the qualitative health band a score falls into.
type HealthStatus string

const (
	// HealthExcellent covers scores of 90 and above.
	HealthExcellent HealthStatus = "EXCELLENT"

	// HealthGood covers scores from 75 through 89.
	HealthGood HealthStatus = "GOOD"

	// HealthFair covers scores from 60 through 74.
	HealthFair HealthStatus = "FAIR"

	// HealthPoor covers scores from 40 through 59.
	HealthPoor HealthStatus = "POOR"

	// HealthCritical covers scores below 40.
	HealthCritical HealthStatus = "CRITICAL"
)

// String returns the string representation of the health status.
func (h HealthStatus) String() string {
	return string(h)
}

// HealthStatusForScore maps a score in [0, 100] to its health band.
func HealthStatusForScore(score int) HealthStatus {
	switch {
	case score >= 90:
		return HealthExcellent
	case score >= 75:
		return HealthGood
	case score >= 60:
		return HealthFair
	case score >= 40:
		return HealthPoor
	default:
		return HealthCritical
	}
}

// GenerateRecommendations derives actionable guidance from validation
// results. Recommendations come out in priority order, with invalid and
// conflicting data first. A clean result set yields a single confirmation
// message.
func (e *Engine) GenerateRecommendations(results []ValidationResult) []string {
	var hasInvalid, hasConflicting, hasMismatch, hasMissing, hasStale, hasUnverifiable bool
	for _, r := range results {
		switch r.Status {
		case StatusInvalid:
			hasInvalid = true
		case StatusStale:
			hasStale = true
		case StatusUnverifiable:
			hasUnverifiable = true
		}
		if r.HasDiscrepancy(DiscrepancyConflictingSources) {
			hasConflicting = true
		}
		if r.HasDiscrepancy(DiscrepancyContentMismatch) {
			hasMismatch = true
		}
		if r.HasDiscrepancy(DiscrepancyMissingData) {
			hasMissing = true
		}
	}

	var recs []string
	if hasInvalid || hasConflicting {
		recs = append(recs, "Prioritize fixing components with invalid or conflicting data")
	}
	if hasMismatch {
		recs = append(recs, "Review components whose content does not match their source documents")
	}
	if hasMissing {
		recs = append(recs, "Add missing data for components flagged as incomplete")
	}
	if hasStale {
		recs = append(recs, "Update outdated content for components marked stale")
	}
	if hasUnverifiable {
		recs = append(recs, "Link unverifiable components to supporting source evidence")
	}
	if len(recs) == 0 {
		recs = append(recs, "All components validated successfully")
	}
	return recs
}

// Report is a complete scoring summary for one validation pass.
type Report struct {
	OverallScore    int            `json:"overallScore"`
	HealthStatus    HealthStatus   `json:"healthStatus"`
	Breakdown       Breakdown      `json:"breakdown"`
	ComponentScores map[string]int `json:"componentScores"`
	Summary         string         `json:"summary"`
	Recommendations []string       `json:"recommendations"`
	Trends          []TrendPoint   `json:"trends,omitempty"`
	GeneratedAt     time.Time      `json:"generatedAt"`
}

type reportConfig struct {
	componentTypes map[string]string
	trends         []TrendPoint
}

// ReportOption configures report generation.
type ReportOption func(*reportConfig)

// WithComponentTypes supplies the component ID to type mapping used for
// weighted scoring.
func WithComponentTypes(componentTypes map[string]string) ReportOption {
	return func(c *reportConfig) {
		c.componentTypes = componentTypes
	}
}

// WithTrends embeds historical trend points in the report.
func WithTrends(trends []TrendPoint) ReportOption {
	return func(c *reportConfig) {
		c.trends = trends
	}
}

// GenerateScoringReport assembles the full scoring picture for a result
// set: overall score, health band, dimension breakdown, per-component
// scores, recommendations, and optional trends.
func (e *Engine) GenerateScoringReport(results []ValidationResult, opts ...ReportOption) Report {
	var cfg reportConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	overall := e.CalculateWeightedScore(results, cfg.componentTypes)
	health := HealthStatusForScore(overall)

	return Report{
		OverallScore:    overall,
		HealthStatus:    health,
		Breakdown:       e.CalculateScoreBreakdown(results),
		ComponentScores: e.ComponentScores(results),
		Summary:         summarize(results, overall, health),
		Recommendations: e.GenerateRecommendations(results),
		Trends:          cfg.trends,
		GeneratedAt:     time.Now().UTC(),
	}
}

func summarize(results []ValidationResult, overall int, health HealthStatus) string {
	if len(results) == 0 {
		return "No validation results to score"
	}
	valid := 0
	for _, r := range results {
		if r.Status == StatusValid {
			valid++
		}
	}
	return fmt.Sprintf("Overall score %d (%s): %d of %d results valid", overall, health, valid, len(results))
}
