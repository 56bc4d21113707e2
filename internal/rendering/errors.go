// Package rendering turns a profile into a styled HTML résumé.
package rendering

import "fmt"

// TemplateError represents an error reading, parsing or executing the résumé template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// StyleNotFoundError is returned when no stylesheet exists for the requested style
type StyleNotFoundError struct {
	Style     string
	Available []string
}

func (e *StyleNotFoundError) Error() string {
	if len(e.Available) > 0 {
		return fmt.Sprintf("style not found: %q (available: %v)", e.Style, e.Available)
	}
	return fmt.Sprintf("style not found: %q", e.Style)
}
