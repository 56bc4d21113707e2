// Package profile loads, encodes and compares base résumé profiles.
package profile

import "fmt"

// LoadError represents an error during file I/O or YAML parsing
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", e.Message, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("load error: %s", msg)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// DecodeError represents YAML content that cannot be turned into a profile
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("decode error: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
