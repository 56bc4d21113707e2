package pipeline

import (
	"context"
	"fmt"
	"runtime/debug"
)

// Outcome is the result of one step: a value on success or the step's error
type Outcome[T any] struct {
	Value T
	Err   *StepError
}

// OK reports whether the step succeeded
func (o Outcome[T]) OK() bool {
	return o.Err == nil
}

// Step is one entry in the pipeline table
type Step struct {
	Name  StepName
	State State
	run   func(ctx context.Context, rc *RunContext) *StepError
}

// NewStep builds a step from a producer and a publisher.
// publish stores the value into the context and runs only when produce succeeds.
func NewStep[T any](name StepName, state State, produce func(ctx context.Context, rc *RunContext) (T, error), publish func(rc *RunContext, value T)) Step {
	return Step{
		Name:  name,
		State: state,
		run: func(ctx context.Context, rc *RunContext) *StepError {
			out := attempt(ctx, rc, name, produce)
			if !out.OK() {
				return out.Err
			}
			publish(rc, out.Value)
			return nil
		},
	}
}

// attempt runs produce and converts both returned errors and panics into an Outcome
func attempt[T any](ctx context.Context, rc *RunContext, name StepName, produce func(context.Context, *RunContext) (T, error)) (out Outcome[T]) {
	defer func() {
		if r := recover(); r != nil {
			var cause error
			if err, ok := r.(error); ok {
				cause = err
			}
			out = Outcome[T]{Err: &StepError{
				Step:    name,
				Message: fmt.Sprintf("panic: %v", r),
				Cause:   cause,
				Detail:  string(debug.Stack()),
			}}
		}
	}()

	value, err := produce(ctx, rc)
	if err != nil {
		return Outcome[T]{Err: &StepError{Step: name, Message: err.Error(), Cause: err}}
	}
	return Outcome[T]{Value: value}
}
