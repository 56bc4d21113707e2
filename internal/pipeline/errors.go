package pipeline

import "fmt"

// StepError describes the first failure of a run
type StepError struct {
	Step    StepName
	Message string
	Cause   error
	// Detail carries the stack trace when the step panicked
	Detail string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed: %s", e.Step, e.Message)
}

func (e *StepError) Unwrap() error {
	return e.Cause
}

// Panicked reports whether the step failed with a panic rather than an error
func (e *StepError) Panicked() bool {
	return e.Detail != ""
}
