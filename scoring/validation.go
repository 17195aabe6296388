package scoring

import (
	"fmt"
	"time"
)

// Status represents the validation verdict for a single component.
type Status string

const (
	// StatusValid indicates the component's content matches its sources.
	StatusValid Status = "VALID"

	// StatusWarning indicates minor issues that do not invalidate the
	// component.
	StatusWarning Status = "WARNING"

	// StatusInvalid indicates the component's content is wrong.
	StatusInvalid Status = "INVALID"

	// StatusStale indicates the component's sources have moved on since
	// extraction.
	StatusStale Status = "STALE"

	// StatusUnverifiable indicates no source evidence could confirm or
	// deny the content.
	StatusUnverifiable Status = "UNVERIFIABLE"
)

// statusBaseScores maps validation statuses to their base score before
// confidence and component-type weighting are applied.
var statusBaseScores = map[Status]float64{
	StatusValid:        100,
	StatusWarning:      70,
	StatusStale:        50,
	StatusUnverifiable: 30,
	StatusInvalid:      0,
}

// IsValid returns true if the status is a recognized validation status.
func (s Status) IsValid() bool {
	_, ok := statusBaseScores[s]
	return ok
}

// BaseScore returns the base score associated with the status.
// Returns 0 for unrecognized statuses.
func (s Status) BaseScore() float64 {
	if score, ok := statusBaseScores[s]; ok {
		return score
	}
	return 0
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a string into a Status value.
// Returns an error if the string is not a valid validation status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid validation status: %s", s)
	}
	return status, nil
}

// AllStatuses returns all valid validation statuses in order from best to
// worst base score.
func AllStatuses() []Status {
	return []Status{
		StatusValid,
		StatusWarning,
		StatusStale,
		StatusUnverifiable,
		StatusInvalid,
	}
}

// DiscrepancyType classifies what a validation check found wrong.
type DiscrepancyType string

const (
	// DiscrepancyContentMismatch indicates the component text disagrees
	// with its source document.
	DiscrepancyContentMismatch DiscrepancyType = "CONTENT_MISMATCH"

	// DiscrepancyMissingData indicates expected content is absent.
	DiscrepancyMissingData DiscrepancyType = "MISSING_DATA"

	// DiscrepancyConflictingSources indicates two sources contradict each
	// other about the component.
	DiscrepancyConflictingSources DiscrepancyType = "CONFLICTING_SOURCES"
)

// IsValid returns true if the discrepancy type is recognized.
func (t DiscrepancyType) IsValid() bool {
	switch t {
	case DiscrepancyContentMismatch, DiscrepancyMissingData, DiscrepancyConflictingSources:
		return true
	default:
		return false
	}
}

// String returns the string representation of the discrepancy type.
func (t DiscrepancyType) String() string {
	return string(t)
}

// AllDiscrepancyTypes returns all valid discrepancy types.
func AllDiscrepancyTypes() []DiscrepancyType {
	return []DiscrepancyType{
		DiscrepancyContentMismatch,
		DiscrepancyMissingData,
		DiscrepancyConflictingSources,
	}
}

// Severity represents how serious a discrepancy is.
type Severity string

const (
	// SeverityCritical indicates the discrepancy invalidates the component.
	SeverityCritical Severity = "CRITICAL"

	// SeverityHigh indicates a discrepancy that needs prompt attention.
	SeverityHigh Severity = "HIGH"

	// SeverityMedium indicates a moderate discrepancy.
	SeverityMedium Severity = "MEDIUM"

	// SeverityLow indicates a minor discrepancy.
	SeverityLow Severity = "LOW"
)

// severityRanks orders severities for comparison. Higher ranks are more
// severe.
var severityRanks = map[Severity]int{
	SeverityCritical: 4,
	SeverityHigh:     3,
	SeverityMedium:   2,
	SeverityLow:      1,
}

// IsValid returns true if the severity level is valid.
func (s Severity) IsValid() bool {
	_, ok := severityRanks[s]
	return ok
}

// Rank returns the numeric rank of the severity level.
// Returns 0 for invalid severities.
func (s Severity) Rank() int {
	if rank, ok := severityRanks[s]; ok {
		return rank
	}
	return 0
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// CompareSeverity compares two severity levels.
// Returns:
//   - negative if s1 < s2
//   - zero if s1 == s2
//   - positive if s1 > s2
func CompareSeverity(s1, s2 Severity) int {
	return s1.Rank() - s2.Rank()
}

// AllSeverities returns all valid severity levels in order from critical to
// low.
func AllSeverities() []Severity {
	return []Severity{
		SeverityCritical,
		SeverityHigh,
		SeverityMedium,
		SeverityLow,
	}
}

// Discrepancy is one concrete mismatch found during validation.
type Discrepancy struct {
	Type     DiscrepancyType `json:"type"`
	Severity Severity        `json:"severity"`
	Message  string          `json:"message"`
}

// ValidationResult is the verdict for one component within a validation run.
type ValidationResult struct {
	ID              string        `json:"id"`
	ValidationRunID string        `json:"validationRunId"`
	ComponentID     string        `json:"componentId"`
	Status          Status        `json:"status"`
	Discrepancies   []Discrepancy `json:"discrepancies,omitempty"`

	// Confidence is the validator's certainty in the verdict, in [0, 1].
	Confidence float64 `json:"confidence"`

	CreatedAt time.Time `json:"createdAt"`
}

// HasDiscrepancy reports whether the result carries a discrepancy of the
// given type.
func (r ValidationResult) HasDiscrepancy(t DiscrepancyType) bool {
	for _, d := range r.Discrepancies {
		if d.Type == t {
			return true
		}
	}
	return false
}

// MaxSeverity returns the most severe discrepancy level on the result, or
// the empty severity when there are no discrepancies.
func (r ValidationResult) MaxSeverity() Severity {
	var max Severity
	for _, d := range r.Discrepancies {
		if d.Severity.Rank() > max.Rank() {
			max = d.Severity
		}
	}
	return max
}
