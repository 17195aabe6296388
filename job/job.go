// Package job models asynchronous diagram generation jobs and the filters
// used to list them. Jobs move PENDING to PROCESSING to a terminal
// COMPLETED or FAILED, carrying a coarse progress percentage for pollers.
package job

import "time"

// Status represents the lifecycle state of a generation job.
type Status string

const (
	// StatusPending indicates the job is queued and has not started.
	StatusPending Status = "PENDING"

	// StatusProcessing indicates the job is actively generating.
	StatusProcessing Status = "PROCESSING"

	// StatusCompleted indicates the job finished and its diagram is ready.
	StatusCompleted Status = "COMPLETED"

	// StatusFailed indicates the job stopped with an error.
	StatusFailed Status = "FAILED"
)

// IsValid returns true if the status is a recognized job status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the status is a final state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Job tracks one diagram generation request from submission to completion.
type Job struct {
	ID          string `json:"id"`
	OperationID string `json:"operationId"`
	DiagramID   string `json:"diagramId"`
	Status      Status `json:"status"`

	// Progress is a coarse completion percentage in [0, 100]. It only
	// moves forward and reaches 100 exactly when the job completes.
	Progress int `json:"progress"`

	// Error holds the failure message for FAILED jobs, empty otherwise.
	Error string `json:"error,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Clone returns a deep copy of the job.
func (j *Job) Clone() *Job {
	if j == nil {
		return nil
	}
	out := *j
	out.StartedAt = cloneTimePtr(j.StartedAt)
	out.CompletedAt = cloneTimePtr(j.CompletedAt)
	return &out
}

// Filter narrows job listings. Nil fields match everything; Limit and
// Offset page through the matches, with Limit zero meaning no cap.
type Filter struct {
	OperationID *string `json:"operationId,omitempty"`
	Status      *Status `json:"status,omitempty"`
	Limit       int     `json:"limit,omitempty"`
	Offset      int     `json:"offset,omitempty"`
}

// Matches reports whether the job passes the filter's field constraints.
// Limit and Offset are applied by the caller, not here.
func (f Filter) Matches(j *Job) bool {
	if j == nil {
		return false
	}
	if f.OperationID != nil && j.OperationID != *f.OperationID {
		return false
	}
	if f.Status != nil && j.Status != *f.Status {
		return false
	}
	return true
}

func cloneTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
