// Package export writes rendered résumés to disk as PDF or HTML.
package export

import "fmt"

// Error represents a failure producing or writing an output file
type Error struct {
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", e.Message, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("export error: %s", msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
