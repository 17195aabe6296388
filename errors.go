package sdk

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sentinel errors for common pipeline error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrOperationNotFound indicates the requested operation is unknown to the resolver.
	ErrOperationNotFound = errors.New("operation not found")

	// ErrUnsupportedExportFormat indicates the requested export format is not supported.
	ErrUnsupportedExportFormat = errors.New("unsupported export format")

	// ErrInvalidConfig indicates the provided configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrAlreadyStarted indicates Start was called on a pipeline that is already running.
	ErrAlreadyStarted = errors.New("pipeline already started")

	// ErrShuttingDown indicates the pipeline no longer accepts work because
	// shutdown has begun.
	ErrShuttingDown = errors.New("pipeline shutting down")
)

// Error kinds categorize errors by their type.
const (
	// KindNotFound represents errors where a resource was not found.
	KindNotFound = "not_found"

	// KindValidation represents errors related to input validation.
	KindValidation = "validation"

	// KindConfiguration represents errors related to configuration.
	KindConfiguration = "configuration"

	// KindStore represents errors raised by the history store.
	KindStore = "store"

	// KindShutdown represents errors caused by pipeline lifecycle state.
	KindShutdown = "shutdown"

	// KindInternal represents internal pipeline errors.
	KindInternal = "internal"
)

// PipelineError is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of error.
//
// PipelineError implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
//
// Example usage:
//
//	err := &PipelineError{
//		Op:   "Pipeline.StartDiagramGeneration",
//		Kind: KindNotFound,
//		Err:  ErrOperationNotFound,
//	}
type PipelineError struct {
	// Op is the operation that failed (e.g., "Pipeline.ExportDiagram").
	Op string

	// Kind categorizes the error (e.g., KindNotFound, KindValidation).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	// This can include resource IDs, parameter values, or other debugging information.
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *PipelineError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sdk: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("sdk: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("sdk: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Is implements error matching for PipelineError, allowing comparison based on
// the underlying error or the PipelineError itself.
func (e *PipelineError) Is(target error) bool {
	if target == nil {
		return false
	}

	// Check if target is a PipelineError with matching Kind
	if t, ok := target.(*PipelineError); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	// Delegate to underlying error
	return errors.Is(e.Err, target)
}

// WithContext returns a new PipelineError with the provided context added.
// This is useful for adding debugging information to errors.
//
// Example:
//
//	err := &PipelineError{
//		Op:   "Pipeline.UpdateComponent",
//		Kind: KindValidation,
//		Err:  err,
//	}
//	err = err.WithContext(map[string]any{
//		"diagram_id":   diagramID,
//		"component_id": componentID,
//	})
func (e *PipelineError) WithContext(ctx map[string]any) *PipelineError {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any)
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewNotFoundError creates a new PipelineError with KindNotFound.
func NewNotFoundError(op string, err error) *PipelineError {
	return &PipelineError{
		Op:   op,
		Kind: KindNotFound,
		Err:  err,
	}
}

// NewValidationError creates a new PipelineError with KindValidation.
func NewValidationError(op string, err error) *PipelineError {
	return &PipelineError{
		Op:   op,
		Kind: KindValidation,
		Err:  err,
	}
}

// NewConfigurationError creates a new PipelineError with KindConfiguration.
func NewConfigurationError(op string, err error) *PipelineError {
	return &PipelineError{
		Op:   op,
		Kind: KindConfiguration,
		Err:  err,
	}
}

// NewStoreError creates a new PipelineError with KindStore.
func NewStoreError(op string, err error) *PipelineError {
	return &PipelineError{
		Op:   op,
		Kind: KindStore,
		Err:  err,
	}
}

// NewShutdownError creates a new PipelineError with KindShutdown.
func NewShutdownError(op string, err error) *PipelineError {
	return &PipelineError{
		Op:   op,
		Kind: KindShutdown,
		Err:  err,
	}
}

// NewInternalError creates a new PipelineError with KindInternal.
func NewInternalError(op string, err error) *PipelineError {
	return &PipelineError{
		Op:   op,
		Kind: KindInternal,
		Err:  err,
	}
}

// CloseWithLog attempts to close the provided resource and logs any error
// at warning level. This is intended for use in defer statements to ensure
// cleanup errors are not silently ignored.
//
// The name parameter should describe the resource being closed (e.g.,
// "history store", "database"). If logger is nil, slog.Default() is used.
//
// Example usage:
//
//	defer sdk.CloseWithLog(store, logger, "history store")
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
