package pipeline

import (
	"fmt"
	"time"
)

// MissingDependencyError reports that a stage's required input artifact is
// absent. The stage fails fast with the file named instead of propagating
// a parse failure downstream.
type MissingDependencyError struct {
	Stage string
	Path  string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("stage %s: missing dependency %s", e.Stage, e.Path)
}

// StageTimeoutError reports that a stage exceeded its wall-clock budget.
type StageTimeoutError struct {
	Stage   string
	Timeout time.Duration
}

func (e *StageTimeoutError) Error() string {
	return fmt.Sprintf("stage %s: timed out after %s", e.Stage, e.Timeout)
}

// StageError wraps a failure from a stage body.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
