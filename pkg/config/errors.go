package config

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound = errors.New("configuration file not found")
	ErrInvalidJSON  = errors.New("invalid JSON syntax")
	ErrInvalidYAML  = errors.New("invalid YAML syntax")
	ErrEmptyFile    = errors.New("configuration file is empty")
	ErrNoFiles      = errors.New("no configuration files")
)

// FieldError is a single problem found in an endpoint table.
type FieldError struct {
	Field   string `json:"field,omitempty"` // e.g. "paths./hello.get.response.status"
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationError collects every problem found in an endpoint table.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "\n")
}

// Add records a problem.
func (e *ValidationError) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

// errOrNil returns e only if it holds at least one problem.
func (e *ValidationError) errOrNil() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// fieldPath joins path elements with dots, e.g. paths./hello.get.
func fieldPath(elems ...string) string {
	return strings.Join(elems, ".")
}

// FileError attaches the name of the endpoint table file to a load error.
type FileError struct {
	File string
	Err  error
}

func (e *FileError) Error() string {
	return e.File + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Problems flattens err into field errors for display. Errors that are not
// validation errors become a single entry without a field.
func Problems(err error) []FieldError {
	if err == nil {
		return nil
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Errors
	}
	return []FieldError{{Message: err.Error()}}
}
