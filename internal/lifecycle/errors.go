package lifecycle

import (
	"errors"
	"fmt"

	"github.com/kurochkinivan/defect_reporter/internal/domain"
)

var (
	ErrMissingIdentifier = errors.New("missing identifier")
	ErrJobFailed         = errors.New("processing job failed")
	ErrCancelled         = errors.New("polling cancelled")
	ErrNoResult          = errors.New("completed job has no result")
	ErrUnknownStatus     = errors.New("unknown job status")
)

// JobFailedError carries the backend's failure message verbatim.
type JobFailedError struct {
	JobID   domain.ID
	Message string
}

func (e *JobFailedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("job %s: processing failed", e.JobID)
	}

	return fmt.Sprintf("job %s: %s", e.JobID, e.Message)
}

func (e *JobFailedError) Is(target error) bool {
	return target == ErrJobFailed
}

// TransportError is a failed call to the processing API. It ends the
// current operation; retrying is up to the caller.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func transportError(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

func cancelledError(cause error) error {
	if cause == nil {
		return ErrCancelled
	}

	return fmt.Errorf("%w: %w", ErrCancelled, cause)
}
